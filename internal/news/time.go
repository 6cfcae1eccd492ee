package news

import "time"

// DisplayLayout is the canonical timestamp form shown to the user and used
// for cache ordering.
const DisplayLayout = "2006-01-02 15:04:05"

// sourceLayouts are the timestamp forms observed in source feeds, tried in
// order.
var sourceLayouts = []string{
	DisplayLayout,
	time.RFC3339,
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006-01-02",
}

// Normalizer converts source timestamp strings into canonical display form
// in a fixed target zone. Parsing is a single deterministic rule: a naive
// timestamp is taken to already be in the target zone. Input the normalizer
// cannot parse is returned raw, never as an error.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer creates a Normalizer for the named zone. An unknown zone
// name falls back to the local zone.
func NewNormalizer(zone string) *Normalizer {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

// Normalize converts a raw source timestamp into canonical display form.
// "unknown", empty, and unparsable input come back unchanged.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" || raw == UnknownField {
		return raw
	}
	for _, layout := range sourceLayouts {
		t, err := time.ParseInLocation(layout, raw, n.loc)
		if err != nil {
			continue
		}
		return t.In(n.loc).Format(DisplayLayout)
	}
	return raw
}

// Format renders an already-parsed time in the target zone using the
// canonical display layout.
func (n *Normalizer) Format(t time.Time) string {
	return t.In(n.loc).Format(DisplayLayout)
}

// Now returns the current time in the target zone, formatted for display.
// Used for the "last refreshed" caption.
func (n *Normalizer) Now() string {
	return time.Now().In(n.loc).Format(DisplayLayout)
}
