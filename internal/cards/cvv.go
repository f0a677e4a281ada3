package cards

import (
	"github.com/partnerpay/paymentpage/internal/verdict"
)

// ValidateCVV checks a CVV against a set of allowed lengths. The length must
// be an exact member of the set, not merely within its min/max. A nil or
// empty set falls back to the common 3-digit rule.
func ValidateCVV(raw string, lengths []int) verdict.Verdict {
	if len(lengths) == 0 {
		lengths = []int{3}
	}
	if raw == "" {
		return verdict.Fail(verdict.CodeEmpty)
	}
	if !IsDigits(raw) {
		return verdict.Fail(verdict.CodeBadCVV)
	}
	for _, l := range lengths {
		if len(raw) == l {
			return verdict.OK()
		}
	}
	return verdict.Fail(verdict.CodeBadCVV)
}

// ValidateCVV checks a CVV against the brand's allowed lengths.
func (b Brand) ValidateCVV(raw string) verdict.Verdict {
	return ValidateCVV(raw, b.CVVLengths)
}
