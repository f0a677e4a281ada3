// Package cards holds the brand catalog and the pure card validation and
// commission logic built on top of it.
package cards

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Pattern is a BIN matcher: either an exact numeric prefix, or an inclusive
// [RangeMin, RangeMax] range tested against the card number prefix of the
// same digit-width as RangeMin.
type Pattern struct {
	Prefix   string
	RangeMin int
	RangeMax int
}

// NewPrefix returns an exact-prefix pattern.
func NewPrefix(prefix string) Pattern {
	return Pattern{Prefix: prefix}
}

// NewRange returns an inclusive numeric range pattern.
func NewRange(min, max int) Pattern {
	return Pattern{RangeMin: min, RangeMax: max}
}

// Strength is the digit-width of the pattern, used to rank competing matches.
func (p Pattern) Strength() int {
	if p.Prefix != "" {
		return len(p.Prefix)
	}
	return len(strconv.Itoa(p.RangeMin))
}

// Matches reports whether a digits-only card number matches the pattern.
func (p Pattern) Matches(digits string) bool {
	width := p.Strength()
	if len(digits) < width {
		return false
	}
	if p.Prefix != "" {
		return digits[:width] == p.Prefix
	}
	n, err := strconv.Atoi(digits[:width])
	if err != nil {
		return false
	}
	return n >= p.RangeMin && n <= p.RangeMax
}

// CommissionType tags the fee formula applied for a brand.
type CommissionType string

const (
	CommissionFixed   CommissionType = "fixed"
	CommissionPercent CommissionType = "percent"
	CommissionMixed   CommissionType = "mixed"
)

// CommissionModel is the per-brand fee formula. Rate applies for percent and
// mixed models, Fixed for fixed and mixed.
type CommissionModel struct {
	Type  CommissionType  `json:"type"`
	Rate  decimal.Decimal `json:"rate"`
	Fixed decimal.Decimal `json:"fixed"`
}

// Brand is a static catalog entry. Brands are immutable after catalog load.
type Brand struct {
	Name       string          `json:"name"`
	Patterns   []Pattern       `json:"-"`
	Lengths    []int           `json:"lengths"`
	CVVLengths []int           `json:"cvv_lengths"`
	Commission CommissionModel `json:"-"`
}

// HasLength reports whether n is an allowed number length for the brand.
func (b Brand) HasLength(n int) bool {
	for _, l := range b.Lengths {
		if l == n {
			return true
		}
	}
	return false
}
