package extractor

import "testing"

func TestDefaultRoles(t *testing.T) {
	tests := []struct {
		title   string
		student bool
		staff   bool
	}{
		{"Preis für Studierende", true, false},
		{"Preis für Bedienstete", false, true},
		{"Price for students", true, false},
		{"Price for STAFF", false, true},
		{"Preis für Gäste", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := DefaultRoles.IsStudent(tt.title); got != tt.student {
				t.Errorf("IsStudent(%q) = %v, want %v", tt.title, got, tt.student)
			}
			if got := DefaultRoles.IsStaff(tt.title); got != tt.staff {
				t.Errorf("IsStaff(%q) = %v, want %v", tt.title, got, tt.staff)
			}
		})
	}
}

func TestNewFallsBackToDefaultRoles(t *testing.T) {
	ex := New(nil, RoleWords{Student: []string{"schüler"}})
	if !ex.Roles.IsStudent("Preis für Studierende") {
		t.Errorf("incomplete role words should fall back to the defaults, got %+v", ex.Roles)
	}
}
