// Package verdict defines the result shape shared by all card input
// validators. Validators never return Go errors for bad user input; they
// return a Verdict the caller can forward verbatim.
package verdict

// Error codes reported by the validators.
const (
	CodeEmpty       = "empty"
	CodeInvalid     = "invalid"
	CodeUnsupported = "unsupported_brand"
	CodeBadLength   = "invalid_length"
	CodeLuhnFailed  = "luhn_check_failed"
	CodeBadMonth    = "invalid_month"
	CodeBadYear     = "invalid_year"
	CodeExpired     = "expired"
	CodeYearTooFar  = "year_out_of_range"
	CodeBadCVV      = "invalid_cvv"
)

// Verdict is the uniform validation result. Detail carries per-validator
// context (detected brand, normalized month/year, supported brand names).
type Verdict struct {
	Valid  bool           `json:"valid"`
	Code   string         `json:"code,omitempty"`
	Detail map[string]any `json:"detail,omitempty"`
}

// OK returns a passing verdict.
func OK() Verdict {
	return Verdict{Valid: true}
}

// Fail returns a failing verdict with the given error code.
func Fail(code string) Verdict {
	return Verdict{Code: code}
}

// With attaches a detail entry and returns the verdict for chaining.
func (v Verdict) With(key string, value any) Verdict {
	if v.Detail == nil {
		v.Detail = map[string]any{}
	}
	v.Detail[key] = value
	return v
}
