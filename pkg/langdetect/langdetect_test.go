package langdetect

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"german", "Heute gibt es in der Mensa eine Gemüsesuppe mit frischem Brot und Salat für alle Studierenden.", "de"},
		{"english", "Today the cafeteria serves a vegetable soup with fresh bread and salad for all students and staff.", "en"},
		{"too short", "Suppe", Unknown},
		{"empty", "   ", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}
