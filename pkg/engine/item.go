package engine

// Item is one unit of work for the engine: the ordered package names covered
// by a single gateway invocation.
//
// A single-package item holds one name; a batch holds up to the configured
// batch size. Items are constructed once per command and never mutated.
type Item []string

// DefaultBatchSize groups packages into chunks of this many names per
// invocation when no other size is configured.
const DefaultBatchSize = 10

// Singles wraps each package name in its own single-package item.
//
// Parameters:
//   - names: Package names, one item per name
//
// Returns:
//   - []Item: Items in the same order as the input names
func Singles(names []string) []Item {
	items := make([]Item, 0, len(names))
	for _, name := range names {
		items = append(items, Item{name})
	}
	return items
}

// Partition splits package names into batch items of at most size names each.
//
// The batches partition the input: concatenating them in order reproduces the
// original list exactly, no name appears in more than one batch, and only the
// final batch may be smaller than size.
//
// Parameters:
//   - names: Package names in their original order
//   - size: Maximum names per batch; values below 1 fall back to DefaultBatchSize
//
// Returns:
//   - []Item: Batches in input order; empty for empty input
func Partition(names []string, size int) []Item {
	if size < 1 {
		size = DefaultBatchSize
	}

	items := make([]Item, 0, (len(names)+size-1)/size)
	for start := 0; start < len(names); start += size {
		end := start + size
		if end > len(names) {
			end = len(names)
		}
		items = append(items, Item(names[start:end:end]))
	}
	return items
}
