// Package spocs places sponsored items ("spocs") into organic content.
//
// # Placement Cursors
//
// Every placement name (for example "newtab_spocs") owns one pool of sponsored
// items. During a resolution pass a [Cursors] map records how far into each
// pool the pass has read. Every component that references the same placement
// shares the map, so a duplicated feed rendered twice continues where the
// first rendering stopped instead of repeating its sponsored items.
//
// Cursors are scoped to a single pass. Create a new map with [NewCursors] for
// each pass and discard it afterwards; nothing is remembered across passes.
//
// # Filling
//
// [Fill] walks the declared positions in order:
//
//   - pool exhausted: stop, remaining positions keep their organic items
//   - item blocked: the pool slot is consumed, the position keeps its organic item
//   - otherwise: the item is spliced in at the position's index
//
// The two rules are deliberately asymmetric. Exhaustion ends the walk while a
// blocked item only skips its own position.
//
// # Banners
//
// Billboard and leaderboard items are excluded from content filling (see
// [ContentPool]) and placed by row through [PlaceBanner]. [PlacementCounts]
// keeps per-type placement counts and rejects unknown ad types with an
// UNSUPPORTED_AD_TYPE error.
package spocs
