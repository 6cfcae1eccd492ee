package news

import "sort"

// Merge folds a freshly fetched batch into the existing cache and returns a
// new cache satisfying all invariants: no duplicate (title, publishTime)
// keys, descending publish-time order, at most maxTotal elements.
//
// Incoming items win ties against existing ones, so a re-fetched item
// replaces its stale cached copy (body/link may have been updated upstream).
// An empty batch is a strict no-op: the existing slice is returned unchanged
// so a failed or empty fetch can never clobber the cache.
func Merge(existing, incoming []Item, maxTotal int) []Item {
	if len(incoming) == 0 {
		return existing
	}
	if maxTotal <= 0 {
		maxTotal = DefaultMaxTotal
	}

	// Incoming ahead of existing; first occurrence of a key wins.
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]Item, 0, len(existing)+len(incoming))
	for _, it := range incoming {
		if seen[it.Key()] {
			continue
		}
		seen[it.Key()] = true
		merged = append(merged, it)
	}
	for _, it := range existing {
		if seen[it.Key()] {
			continue
		}
		seen[it.Key()] = true
		merged = append(merged, it)
	}

	// Newest first. Items with an unparsable publish time sort by their raw
	// string; the stable sort keeps their position deterministic across
	// repeated merges of the same inputs.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishTime > merged[j].PublishTime
	})

	if len(merged) > maxTotal {
		merged = merged[:maxTotal]
	}
	return merged
}
