package cards

import "testing"

func TestValidateCVV(t *testing.T) {
	cases := []struct {
		in      string
		lengths []int
		ok      bool
	}{
		{"123", nil, true}, // default 3-length rule
		{"12", nil, false},
		{"1234", nil, false},
		{"", nil, false},
		{"12a", nil, false},
		{" 123", nil, false},
		{"1234", []int{3, 4}, true},
		{"123", []int{3, 4}, true},
		{"12345", []int{3, 4}, false},
		{"123", []int{4}, false}, // exact membership, not min/max range
	}
	for _, c := range cases {
		if got := ValidateCVV(c.in, c.lengths).Valid; got != c.ok {
			t.Fatalf("ValidateCVV(%q, %v) = %v want %v", c.in, c.lengths, got, c.ok)
		}
	}
}

func TestBrandValidateCVV(t *testing.T) {
	brand, _ := DefaultCatalog().Find("VISA")
	if !brand.ValidateCVV("123").Valid {
		t.Fatalf("visa 3-digit cvv must pass")
	}
	if brand.ValidateCVV("1234").Valid {
		t.Fatalf("visa 4-digit cvv must fail")
	}
}
