package cards

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Catalog is the set of brands a partner accepts. It is constructed once at
// startup and never mutated; declaration order is the tie-break order for
// ambiguous matches.
type Catalog struct {
	brands []Brand
	byName map[string]int
}

// NewCatalog validates and builds a catalog. A malformed catalog is a
// configuration error and must abort startup.
func NewCatalog(brands []Brand) (*Catalog, error) {
	if len(brands) == 0 {
		return nil, fmt.Errorf("catalog must declare at least one brand")
	}
	byName := make(map[string]int, len(brands))
	for i, b := range brands {
		if b.Name == "" {
			return nil, fmt.Errorf("brand %d: name is required", i)
		}
		if _, dup := byName[b.Name]; dup {
			return nil, fmt.Errorf("brand %s declared twice", b.Name)
		}
		if len(b.Patterns) == 0 {
			return nil, fmt.Errorf("brand %s: at least one pattern is required", b.Name)
		}
		if len(b.Lengths) == 0 {
			return nil, fmt.Errorf("brand %s: at least one valid length is required", b.Name)
		}
		for _, p := range b.Patterns {
			if p.Prefix == "" && (p.RangeMin <= 0 || p.RangeMax < p.RangeMin) {
				return nil, fmt.Errorf("brand %s: bad range pattern [%d, %d]", b.Name, p.RangeMin, p.RangeMax)
			}
		}
		switch b.Commission.Type {
		case CommissionFixed, CommissionPercent, CommissionMixed, "":
		default:
			return nil, fmt.Errorf("brand %s: unknown commission type %q", b.Name, b.Commission.Type)
		}
		byName[b.Name] = i
	}
	return &Catalog{brands: brands, byName: byName}, nil
}

// MustCatalog is NewCatalog that panics on a malformed catalog. For use with
// static catalogs known at compile time.
func MustCatalog(brands []Brand) *Catalog {
	c, err := NewCatalog(brands)
	if err != nil {
		panic(err)
	}
	return c
}

// Brands returns catalog entries in declaration order.
func (c *Catalog) Brands() []Brand {
	out := make([]Brand, len(c.brands))
	copy(out, c.brands)
	return out
}

// Find returns the brand with the given name.
func (c *Catalog) Find(name string) (Brand, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Brand{}, false
	}
	return c.brands[i], true
}

// Names returns brand names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.brands))
	for i, b := range c.brands {
		names[i] = b.Name
	}
	return names
}

// DefaultCatalog returns the stock VISA / MASTERCARD / MIR catalog with the
// standard commission models: VISA 1%, MASTERCARD fixed 10, MIR 1% + 10.
func DefaultCatalog() *Catalog {
	onePercent := decimal.RequireFromString("0.01")
	ten := decimal.NewFromInt(10)

	return MustCatalog([]Brand{
		{
			Name:       "VISA",
			Patterns:   []Pattern{NewPrefix("4")},
			Lengths:    []int{16},
			CVVLengths: []int{3},
			Commission: CommissionModel{Type: CommissionPercent, Rate: onePercent},
		},
		{
			Name: "MASTERCARD",
			Patterns: []Pattern{
				NewRange(51, 55),
				NewRange(2221, 2229),
				NewRange(223, 229),
				NewRange(23, 26),
				NewRange(270, 271),
				NewPrefix("2720"),
			},
			Lengths:    []int{16},
			CVVLengths: []int{3},
			Commission: CommissionModel{Type: CommissionFixed, Fixed: ten},
		},
		{
			Name:       "MIR",
			Patterns:   []Pattern{NewRange(2200, 2204)},
			Lengths:    []int{16},
			CVVLengths: []int{3},
			Commission: CommissionModel{Type: CommissionMixed, Rate: onePercent, Fixed: ten},
		},
	})
}
