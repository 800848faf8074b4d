package models

// Venue identifies a cafeteria by city, optional parent institution and name.
type Venue struct {
	City        string `json:"city" yaml:"city"`
	Institution string `json:"institution,omitempty" yaml:"institution,omitempty"`
	Name        string `json:"name" yaml:"name"`

	// CapturedOn is the YYYY-MM-DD date the page was archived, when known.
	CapturedOn string `json:"captured_on,omitempty" yaml:"captured_on,omitempty"`
}

// IsComplete reports whether the venue has enough identity to be stored.
func (v Venue) IsComplete() bool {
	return v.City != "" && v.Name != ""
}
