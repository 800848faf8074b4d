package extractor

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   float64
		wantOK bool
	}{
		{"euro suffix", "3,40 €", 3.40, true},
		{"euro prefix", "€ 2,5", 2.5, true},
		{"EUR word", "4,10 EUR", 4.10, true},
		{"dot decimal", "1.90", 1.90, true},
		{"integer", "5 €", 5, true},
		{"surrounding text", "ab 2,80 € pro Portion", 2.80, true},
		{"empty", "", 0, false},
		{"only symbol", " € ", 0, false},
		{"free", "free", 0, false},
		// Grouping commas are not disambiguated; only the first comma becomes a dot.
		{"grouping ambiguity", "1,234,50", 1.234, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePrice(tt.text)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParsePrice(%q) = %v, %v, want %v, %v", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
