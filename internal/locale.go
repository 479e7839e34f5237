package internal

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultLocale = "en-US"

// Locale carries the formatting conventions the engine and formatter need.
type Locale struct {
	Tag              language.Tag
	DecimalSeparator string
}

// NewLocale resolves a BCP 47 tag such as "en-US" or "ru-RU".
func NewLocale(tag string) (Locale, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return Locale{}, fmt.Errorf("%w: %q", ErrInvalidLocale, tag)
	}

	return Locale{Tag: t, DecimalSeparator: decimalSeparator(t)}, nil
}

// decimalSeparator reads the separator from the CLDR formatting of 1.5.
// Locales that print native digits fall back to ".".
func decimalSeparator(t language.Tag) string {
	out := message.NewPrinter(t).Sprint(number.Decimal(1.5, number.Scale(1)))
	if !strings.HasPrefix(out, "1") || !strings.HasSuffix(out, "5") || utf8.RuneCountInString(out) < 3 {
		return "."
	}

	sep := out[1 : len(out)-1]
	if sep != "." && sep != "," {
		return "."
	}
	return sep
}

// MustLocale is NewLocale for tags known to be valid.
func MustLocale(tag string) Locale {
	loc, err := NewLocale(tag)
	if err != nil {
		panic(err)
	}
	return loc
}

// WithSeparator overrides the decimal separator, keeping the tag.
func (l Locale) WithSeparator(sep string) Locale {
	if sep != "" {
		l.DecimalSeparator = sep
	}
	return l
}

func (l Locale) Format(value float64) string {
	return FormatNumber(value, l.separator())
}

func (l Locale) Parse(text string) (float64, bool) {
	return ParseNumber(text, l.separator())
}

func (l Locale) separator() string {
	if l.DecimalSeparator == "" {
		return "."
	}
	return l.DecimalSeparator
}

func (l Locale) String() string {
	return l.Tag.String()
}
