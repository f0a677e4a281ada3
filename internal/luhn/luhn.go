// Package luhn implements the mod-10 checksum used by card numbers.
package luhn

// Valid reports whether a digit string passes the Luhn check. Starting from
// the rightmost digit, every second digit is doubled; doubled values above 9
// have 9 subtracted. The string must already be digits-only.
func Valid(digits string) bool {
	if digits == "" {
		return false
	}
	sum, dbl := 0, false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return sum%10 == 0
}

// CheckDigit returns the Luhn check digit for a digit string body.
func CheckDigit(body string) byte {
	sum, dbl := 0, true
	for i := len(body) - 1; i >= 0; i-- {
		d := int(body[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return '0' + byte((10-sum%10)%10)
}
