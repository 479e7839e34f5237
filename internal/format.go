package internal

import (
	"math"
	"strconv"
	"strings"
)

// maxPlainInteger is the magnitude below which whole numbers are rendered
// without fraction or exponent.
const maxPlainInteger = 1e15

// FormatNumber renders value for the calculator display using sep as the
// decimal separator. Whole numbers below 1e15 are printed as integers, the
// rest with 15 significant digits and trailing fractional zeros trimmed.
func FormatNumber(value float64, sep string) string {
	if value == math.Floor(value) && math.Abs(value) < maxPlainInteger {
		if value == 0 {
			return "0"
		}
		return strconv.FormatFloat(value, 'f', 0, 64)
	}

	formatted := strconv.FormatFloat(value, 'G', 15, 64)
	if sep != "." {
		formatted = strings.Replace(formatted, ".", sep, 1)
	}

	exp := strings.IndexAny(formatted, "Ee")
	if exp < 0 {
		return trimFraction(formatted, sep)
	}

	// the exponent keeps its zeros (1E+20 stays 1E+20)
	return trimFraction(formatted[:exp], sep) + formatted[exp:]
}

func trimFraction(text, sep string) string {
	if !strings.Contains(text, sep) {
		return text
	}

	text = strings.TrimRight(text, "0")
	return strings.TrimSuffix(text, sep)
}

// ParseNumber reads a display string written with sep as the decimal
// separator. It reports false for anything that is not a finite decimal
// literal, including the error marker.
func ParseNumber(text, sep string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	if sep != "." {
		if strings.Contains(text, ".") {
			return 0, false
		}
		text = strings.Replace(text, sep, ".", 1)
	}

	for _, r := range text {
		if !strings.ContainsRune("0123456789.+-eE", r) {
			return 0, false
		}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
