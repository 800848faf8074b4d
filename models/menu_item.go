// Package models defines the records produced by menu extraction and the
// context they are extracted in.
package models

// MenuItem is one dish served at one venue on one date.
// Field names are the serialization contract for CSV, JSON and the database.
type MenuItem struct {
	VenueCity        string `json:"venue_city" yaml:"venue_city"`
	VenueInstitution string `json:"venue_institution" yaml:"venue_institution"`
	VenueName        string `json:"venue_name" yaml:"venue_name"`

	Date     string `json:"date" yaml:"date"` // YYYY-MM-DD
	Category string `json:"category" yaml:"category"`
	ItemName string `json:"item_name" yaml:"item_name"`

	PriceStudent *float64 `json:"price_student" yaml:"price_student"`
	PriceStaff   *float64 `json:"price_staff" yaml:"price_staff"`
	ItemID       *string  `json:"item_id" yaml:"item_id"`

	SourceRef string `json:"source_ref" yaml:"source_ref"`
}

// Venue returns the serving location the item belongs to.
func (m MenuItem) Venue() Venue {
	return Venue{
		City:        m.VenueCity,
		Institution: m.VenueInstitution,
		Name:        m.VenueName,
	}
}

// Key returns the natural key of the item within its venue and date.
// Items with an id are keyed by it, others by category and name.
func (m MenuItem) Key() string {
	if m.ItemID != nil && *m.ItemID != "" {
		return "id:" + *m.ItemID
	}
	return "name:" + m.Category + "/" + m.ItemName
}
