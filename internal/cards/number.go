package cards

import (
	"strings"

	"github.com/partnerpay/paymentpage/internal/luhn"
	"github.com/partnerpay/paymentpage/internal/verdict"
)

// DetailBrand and friends are the detail keys set by ValidateNumber.
const (
	DetailBrand     = "brand"
	DetailSupported = "supported"
)

// Normalize strips spaces, tabs and dashes from a card number.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		default:
			return r
		}
	}, s)
}

// IsDigits reports whether s is non-empty ASCII digits only.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// LastN returns the last n characters of s.
func LastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Mask hides a PAN for logs, keeping at most the first 6 and last 4 digits.
func Mask(pan string) string {
	cleaned := Normalize(pan)
	n := len(cleaned)
	if n == 0 {
		return ""
	}
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	if n < 10 {
		return strings.Repeat("*", n-4) + cleaned[n-4:]
	}
	return cleaned[:6] + strings.Repeat("*", n-10) + cleaned[n-4:]
}

// ValidateNumber checks a raw card number against the catalog. The detected
// brand name is reported in the verdict detail even when the length or Luhn
// check fails, so the caller can keep highlighting the brand while surfacing
// the error. An unmatched number reports the supported brand names instead.
func (c *Catalog) ValidateNumber(raw string) verdict.Verdict {
	digits := Normalize(raw)
	if digits == "" {
		return verdict.Fail(verdict.CodeEmpty)
	}
	if !IsDigits(digits) {
		return verdict.Fail(verdict.CodeInvalid)
	}

	brand, ok := c.Identify(digits).Best()
	if !ok {
		return verdict.Fail(verdict.CodeUnsupported).With(DetailSupported, c.Names())
	}
	if !brand.HasLength(len(digits)) {
		return verdict.Fail(verdict.CodeBadLength).With(DetailBrand, brand.Name)
	}
	if !luhn.Valid(digits) {
		return verdict.Fail(verdict.CodeLuhnFailed).With(DetailBrand, brand.Name)
	}
	return verdict.OK().With(DetailBrand, brand.Name)
}
