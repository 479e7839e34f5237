package internal

import (
	"errors"
	"testing"
)

func TestNewLocaleSeparator(t *testing.T) {
	tests := map[string]string{
		"en-US": ".",
		"en":    ".",
		"ja-JP": ".",
		"ru-RU": ",",
		"de-DE": ",",
		"fr":    ",",
		"be-BY": ",",
		"az":    ",",
		"af-ZA": ",",
		"mk":    ",",
		"ko-KR": ".",
	}

	for tag, want := range tests {
		loc, err := NewLocale(tag)
		if err != nil {
			t.Errorf("NewLocale(%q): %v", tag, err)
			continue
		}
		if loc.DecimalSeparator != want {
			t.Errorf("NewLocale(%q) separator = %q, want %q", tag, loc.DecimalSeparator, want)
		}
	}
}

func TestNewLocaleInvalid(t *testing.T) {
	_, err := NewLocale("not a locale!")
	if !errors.Is(err, ErrInvalidLocale) {
		t.Errorf("expected ErrInvalidLocale, got %v", err)
	}
}

func TestLocaleWithSeparator(t *testing.T) {
	loc := MustLocale("en-US").WithSeparator(",")
	if loc.Format(1.5) != "1,5" {
		t.Errorf("Format = %q, want %q", loc.Format(1.5), "1,5")
	}
	if loc.String() != "en-US" {
		t.Errorf("String = %q, want %q", loc.String(), "en-US")
	}

	same := loc.WithSeparator("")
	if same.DecimalSeparator != "," {
		t.Errorf("empty separator should keep %q, got %q", ",", same.DecimalSeparator)
	}
}

func TestZeroLocaleUsesDot(t *testing.T) {
	var loc Locale
	if loc.Format(0.5) != "0.5" {
		t.Errorf("Format = %q, want %q", loc.Format(0.5), "0.5")
	}
	if v, ok := loc.Parse("2.5"); !ok || v != 2.5 {
		t.Errorf("Parse = %v, %v", v, ok)
	}
}
