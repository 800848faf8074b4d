package extractor

import "github.com/mpr1255/2025s1-mlci/pkg/textutil"

// RoleWords are the case-insensitive substrings that classify a price by the
// title of its element. A title matching any student word is a student
// price; otherwise any staff word makes it a staff price.
type RoleWords struct {
	Student []string
	Staff   []string
}

// DefaultRoles covers the German labels of the source site and their English
// equivalents, so a page is classified the same whatever its dishes read like.
var DefaultRoles = RoleWords{
	Student: []string{"studierende", "student"},
	Staff:   []string{"bedienstete", "staff"},
}

func (r RoleWords) empty() bool {
	return len(r.Student) == 0 || len(r.Staff) == 0
}

// IsStudent reports whether title names the student price.
func (r RoleWords) IsStudent(title string) bool {
	return containsAny(title, r.Student)
}

// IsStaff reports whether title names the staff price.
func (r RoleWords) IsStaff(title string) bool {
	return containsAny(title, r.Staff)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if w != "" && textutil.ContainsFold(s, w) {
			return true
		}
	}
	return false
}
