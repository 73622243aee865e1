package main

import "testing"

func TestParseYearRange(t *testing.T) {
	tests := []struct {
		expr     string
		wantFrom int
		wantTo   int
		wantErr  bool
	}{
		// Exact year
		{"2024", 2024, 2024, false},

		// Ranges
		{"2020:2024", 2020, 2024, false},
		{"2020:", 2020, 0, false},
		{":2024", 0, 2024, false},
		{":", 0, 0, false},

		// Whitespace and empty
		{"", 0, 0, false},
		{" 2020:2024 ", 2020, 2024, false},

		// Errors
		{"abc", 0, 0, true},
		{"abc:2024", 0, 0, true},
		{"2020:abc", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			from, to, err := parseYearRange(tt.expr)

			if (err != nil) != tt.wantErr {
				t.Errorf("parseYearRange(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("parseYearRange(%q) = (%d, %d), want (%d, %d)", tt.expr, from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}
