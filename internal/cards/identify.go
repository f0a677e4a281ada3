package cards

// Identification is the outcome of matching a card number against the
// catalog. Brands holds every brand that matched at the maximum strength, in
// catalog declaration order; normally it is a singleton.
type Identification struct {
	Brands   []Brand
	Strength int
}

// Best returns the winning brand. When several brands tie at the same
// strength the first in catalog declaration order wins; the tie-break is
// deliberate, not incidental.
func (id Identification) Best() (Brand, bool) {
	if len(id.Brands) == 0 {
		return Brand{}, false
	}
	return id.Brands[0], true
}

// Identify maps a raw card number to the best-matching brands. Formatting
// characters are stripped first; empty or non-numeric input yields no match.
func (c *Catalog) Identify(raw string) Identification {
	digits := Normalize(raw)
	if digits == "" || !IsDigits(digits) {
		return Identification{}
	}

	type match struct {
		brand    Brand
		strength int
	}
	var matches []match
	best := 0
	for _, b := range c.brands {
		strength := 0
		for _, p := range b.Patterns {
			if s := p.Strength(); s > strength && p.Matches(digits) {
				strength = s
			}
		}
		if strength > 0 {
			matches = append(matches, match{brand: b, strength: strength})
			if strength > best {
				best = strength
			}
		}
	}
	if best == 0 {
		return Identification{}
	}

	id := Identification{Strength: best}
	for _, m := range matches {
		if m.strength == best {
			id.Brands = append(id.Brands, m.brand)
		}
	}
	return id
}
