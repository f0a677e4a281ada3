package cards

import "testing"

func TestIdentify(t *testing.T) {
	catalog := DefaultCatalog()

	cases := []struct {
		in       string
		brand    string
		strength int
	}{
		{"4111111111111111", "VISA", 1},
		{"4000 0000 0000 0002", "VISA", 1},
		{"5105105105105100", "MASTERCARD", 2},
		{"5555-5555-5555-4444", "MASTERCARD", 2},
		{"2221000000000009", "MASTERCARD", 4},
		{"2720990000000000", "MASTERCARD", 4},
		{"2300000000000000", "MASTERCARD", 2},
		{"2200000000000004", "MIR", 4},
		{"2204000000000001", "MIR", 4},
	}
	for _, c := range cases {
		id := catalog.Identify(c.in)
		brand, ok := id.Best()
		if !ok {
			t.Fatalf("Identify(%q): no match", c.in)
		}
		if brand.Name != c.brand {
			t.Fatalf("Identify(%q) = %s want %s", c.in, brand.Name, c.brand)
		}
		if id.Strength != c.strength {
			t.Fatalf("Identify(%q) strength = %d want %d", c.in, id.Strength, c.strength)
		}
	}
}

func TestIdentify_NoMatch(t *testing.T) {
	catalog := DefaultCatalog()
	// 2205..2220 sits in the gap between the MIR range and the 2221 block.
	for _, in := range []string{"", "   ", "abcd", "9999999999999999", "1234567890123456", "2205000000000000"} {
		if _, ok := catalog.Identify(in).Best(); ok {
			t.Fatalf("Identify(%q) unexpectedly matched", in)
		}
	}
}

func TestIdentify_TieBreakIsCatalogOrder(t *testing.T) {
	// Two brands matching at the same strength: declaration order decides.
	catalog := MustCatalog([]Brand{
		{Name: "ALPHA", Patterns: []Pattern{NewPrefix("44")}, Lengths: []int{16}},
		{Name: "BETA", Patterns: []Pattern{NewRange(44, 45)}, Lengths: []int{16}},
	})

	id := catalog.Identify("4400000000000000")
	if len(id.Brands) != 2 {
		t.Fatalf("expected both brands at strength 2, got %d", len(id.Brands))
	}
	best, _ := id.Best()
	if best.Name != "ALPHA" {
		t.Fatalf("tie-break must follow catalog order, got %s", best.Name)
	}
}

func TestIdentify_BestPatternPerBrand(t *testing.T) {
	// Within one brand the most specific pattern sets the strength.
	catalog := MustCatalog([]Brand{
		{Name: "X", Patterns: []Pattern{NewPrefix("2"), NewRange(2200, 2204)}, Lengths: []int{16}},
	})
	id := catalog.Identify("2200000000000004")
	if id.Strength != 4 {
		t.Fatalf("strength = %d want 4", id.Strength)
	}
}

func TestNewCatalog_Validation(t *testing.T) {
	cases := []struct {
		name   string
		brands []Brand
	}{
		{"empty", nil},
		{"no patterns", []Brand{{Name: "X", Lengths: []int{16}}}},
		{"no lengths", []Brand{{Name: "X", Patterns: []Pattern{NewPrefix("4")}}}},
		{"bad range", []Brand{{Name: "X", Patterns: []Pattern{NewRange(55, 51)}, Lengths: []int{16}}}},
		{"duplicate", []Brand{
			{Name: "X", Patterns: []Pattern{NewPrefix("4")}, Lengths: []int{16}},
			{Name: "X", Patterns: []Pattern{NewPrefix("5")}, Lengths: []int{16}},
		}},
		{"bad commission", []Brand{{
			Name: "X", Patterns: []Pattern{NewPrefix("4")}, Lengths: []int{16},
			Commission: CommissionModel{Type: "tiered"},
		}}},
	}
	for _, c := range cases {
		if _, err := NewCatalog(c.brands); err == nil {
			t.Fatalf("%s: expected config error", c.name)
		}
	}
}
