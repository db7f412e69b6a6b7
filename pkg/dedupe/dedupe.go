// Package dedupe removes duplicates across ordered groups of items.
//
// Groups are processed in order and earlier groups always win: an item whose
// derived key was already produced by a previous group is dropped from every
// later group. Within a single group the first occurrence of a key is kept.
//
// The result has the same number of groups as the input and preserves the
// relative order of the surviving items:
//
//	d := dedupe.New(func(it layout.Item) string { return it.URL })
//	out := d.Group(topStories, moreStories)
//	// out[1] contains no url already present in out[0]
package dedupe

// Dedupe deduplicates groups of T by a derived comparable key.
// A Dedupe holds no state between calls and is safe for concurrent use.
type Dedupe[T any, K comparable] struct {
	createKey func(T) K
}

// New returns a Dedupe keyed by createKey.
// The zero value of K is an ordinary key: items mapping to it collide with
// each other like any other key.
func New[T any, K comparable](createKey func(T) K) *Dedupe[T, K] {
	return &Dedupe[T, K]{createKey: createKey}
}

// Identity returns a Dedupe that uses the items themselves as keys.
func Identity[T comparable]() *Dedupe[T, T] {
	return New(func(item T) T { return item })
}

// Group returns one deduplicated slice per input group.
// Empty or nil input groups yield empty, non-nil slices.
func (d *Dedupe[T, K]) Group(groups ...[]T) [][]T {
	seen := make(map[K]struct{})
	out := make([][]T, len(groups))

	for i, group := range groups {
		placed := make(map[K]struct{}, len(group))
		kept := make([]T, 0, len(group))
		for _, item := range group {
			key := d.createKey(item)
			if _, ok := seen[key]; ok {
				continue
			}
			if _, ok := placed[key]; ok {
				continue
			}
			placed[key] = struct{}{}
			kept = append(kept, item)
		}
		for key := range placed {
			seen[key] = struct{}{}
		}
		out[i] = kept
	}
	return out
}
