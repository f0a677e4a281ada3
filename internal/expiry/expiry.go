// Package expiry parses and validates cardholder-typed expiration dates.
package expiry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/partnerpay/paymentpage/internal/verdict"
)

// DefaultMaxFutureYears bounds how far in the future an expiry may resolve.
const DefaultMaxFutureYears = 30

// Detail keys set on a passing verdict: the zero-padded 2-digit month and
// 2-digit year actually used downstream.
const (
	DetailMonth = "month"
	DetailYear  = "year"
)

// The accepted input shapes, tried in order: MM/YY(YY) with "/" or "-"
// separators, space-separated, and concatenated with no separator.
var formats = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,2})\s*[/-]\s*(\d{2,4})$`),
	regexp.MustCompile(`^(\d{1,2})\s+(\d{2,4})$`),
	regexp.MustCompile(`^(\d{1,2})(\d{2,4})$`),
}

// Parse extracts month and year components from a free-form date string.
// The first matching format wins; unparseable input yields empty components.
func Parse(raw string) (month, year string) {
	s := strings.TrimSpace(raw)
	for _, f := range formats {
		if m := f.FindStringSubmatch(s); m != nil {
			return m[1], m[2]
		}
	}
	return "", ""
}

// NormalizeYear resolves a 2- or 4-digit year string to a full year. A
// 2-digit value at or above the current 2-digit year lands in the current
// century, anything below rolls into the next century, so the result is
// always the nearest non-past century boundary.
func NormalizeYear(value string, currentYear int) (int, error) {
	if !isDigits(value) {
		return 0, fmt.Errorf("year must be digits")
	}
	switch len(value) {
	case 2:
		yy, _ := strconv.Atoi(value)
		century := currentYear / 100 * 100
		if yy >= currentYear%100 {
			return century + yy, nil
		}
		return century + 100 + yy, nil
	case 4:
		return strconv.Atoi(value)
	default:
		return 0, fmt.Errorf("year must be 2 or 4 digits")
	}
}

// Options tunes validation. The zero value uses the 30-year horizon and the
// wall clock; tests inject Now for a fixed current date.
type Options struct {
	MaxFutureYears int
	Now            func() time.Time
}

func (o Options) horizon() int {
	if o.MaxFutureYears > 0 {
		return o.MaxFutureYears
	}
	return DefaultMaxFutureYears
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Validate parses a free-form date string and checks it is not in the past
// and within the future horizon.
func Validate(raw string, opts Options) verdict.Verdict {
	month, year := Parse(raw)
	return ValidateParts(month, year, opts)
}

// ValidateParts validates already-split month and year components. On
// success the verdict detail carries the zero-padded 2-digit month and year.
func ValidateParts(month, year string, opts Options) verdict.Verdict {
	if strings.TrimSpace(month) == "" || strings.TrimSpace(year) == "" {
		return verdict.Fail(verdict.CodeEmpty)
	}
	if !isDigits(month) {
		return verdict.Fail(verdict.CodeBadMonth)
	}
	mm, _ := strconv.Atoi(month)
	if mm < 1 || mm > 12 {
		return verdict.Fail(verdict.CodeBadMonth)
	}

	now := opts.now()
	yyyy, err := NormalizeYear(strings.TrimSpace(year), now.Year())
	if err != nil {
		return verdict.Fail(verdict.CodeBadYear)
	}
	switch {
	case yyyy < now.Year():
		return verdict.Fail(verdict.CodeExpired)
	case yyyy > now.Year()+opts.horizon():
		return verdict.Fail(verdict.CodeYearTooFar)
	}
	// The one cross-field rule: within the current year, months already
	// behind us are expired.
	if yyyy == now.Year() && mm < int(now.Month()) {
		return verdict.Fail(verdict.CodeExpired)
	}

	return verdict.OK().
		With(DetailMonth, fmt.Sprintf("%02d", mm)).
		With(DetailYear, fmt.Sprintf("%02d", yyyy%100))
}

// CardFace formats month and year as the MM/YY card imprint.
func CardFace(month, year string) string {
	mm, _ := strconv.Atoi(month)
	yy, _ := strconv.Atoi(year)
	return fmt.Sprintf("%02d/%02d", mm, yy%100)
}

func isDigits(s string) bool {
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
