package models

// ExtractContext carries the out-of-band facts about a document that the
// extractor cannot derive from the markup itself.
type ExtractContext struct {
	VenueCity        string
	VenueInstitution string
	VenueName        string
	SourceRef        string

	// FallbackYear completes dates written without a year ("08.09.").
	// Zero means no fallback; such dates are then unresolvable.
	FallbackYear int
}

// NewExtractContext builds a context for a venue and source reference.
func NewExtractContext(v Venue, sourceRef string, fallbackYear int) ExtractContext {
	return ExtractContext{
		VenueCity:        v.City,
		VenueInstitution: v.Institution,
		VenueName:        v.Name,
		SourceRef:        sourceRef,
		FallbackYear:     fallbackYear,
	}
}
