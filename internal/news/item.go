// Package news defines the flash-news item type and the cache merge policy.
package news

// UnknownField is substituted for any field the source failed to provide.
const UnknownField = "unknown"

// DefaultMaxTotal is the cache capacity used when the config does not
// override it.
const DefaultMaxTotal = 1500

// Item is a single flash-news entry.
// Immutable once created; PublishTime keeps the source's raw string form
// (it may be the literal "unknown").
type Item struct {
	Title       string
	Body        string
	PublishTime string
	Link        string
}

// Key returns the identity used for deduplication. Two items with the same
// title and the same raw publish time are the same item, regardless of body
// or link differences.
func (it Item) Key() string {
	return it.Title + "\x00" + it.PublishTime
}
