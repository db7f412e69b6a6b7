package spocs

import (
	"slices"

	"github.com/matzehuels/contentstack/pkg/content"
)

// Cursors tracks, per placement name, how many items of that placement's pool
// have been consumed during one resolution pass.
//
// A Cursors value must be created fresh for every pass and shared by every
// Fill call of that pass. Sharing is what keeps two components that reference
// the same placement from showing the same sponsored item twice.
type Cursors map[string]int

// NewCursors returns an empty cursor map.
func NewCursors() Cursors {
	return make(Cursors)
}

// Fill inserts items from pool into a copy of items at the declared positions.
//
// For each position, in declared order, the next unconsumed item of the
// placement's pool is taken and the placement cursor advances. A blocked item
// still consumes its pool slot but is not inserted, so the organic item keeps
// its place. When the pool runs out, the remaining positions are left alone.
// An index past the end of the content appends at the boundary.
//
// Fill never modifies items or pool.
func Fill(items []content.Item, positions []content.Position, pool []content.Item,
	placement string, cursors Cursors, blocked content.BlockList) []content.Item {
	out := slices.Clone(items)
	if len(positions) == 0 {
		return out
	}
	if _, ok := cursors[placement]; !ok {
		cursors[placement] = 0
	}

	for _, position := range positions {
		cursor := cursors[placement]
		if cursor >= len(pool) {
			break
		}
		spoc := pool[cursor]
		cursors[placement] = cursor + 1

		if blocked.Has(spoc.URL) {
			continue
		}
		out = slices.Insert(out, clampIndex(position.Index, len(out)), spoc)
	}
	return out
}

// ContentPool returns the items of pool that may be placed by content position,
// dropping banner formats which are placed by row instead.
func ContentPool(pool []content.Item) []content.Item {
	out := make([]content.Item, 0, len(pool))
	for _, it := range pool {
		if content.IsBannerFormat(it.Format) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func clampIndex(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}
