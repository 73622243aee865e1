package paper

import "strconv"

var romanNumerals = []string{
	"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X",
	"XI", "XII", "XIII", "XIV", "XV", "XVI", "XVII", "XVIII", "XIX", "XX",
}

// Roman returns the display numeral for section n (1-based). Sections past
// XX, and non-positive n, fall back to decimal.
func Roman(n int) string {
	if n >= 1 && n <= len(romanNumerals) {
		return romanNumerals[n-1]
	}
	return strconv.Itoa(n)
}
