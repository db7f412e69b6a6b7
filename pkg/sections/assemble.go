// Package sections groups recommendations into topic sections.
//
// [Assemble] ranks the sections of a feed, buckets recommendations by their
// section tag, fills each section's sponsored slots and numbers the visible
// items with one position sequence that runs across all sections.
//
// Sponsored slots come from the section's own single-column layout: every tile
// flagged hasAd becomes a fill position at the tile's position. All sections
// share the caller's placement cursors, so a sponsored item shown in one
// section is not repeated in the next.
package sections

import (
	"slices"
	"sort"

	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/spocs"
)

// AdColumnCount is the breakpoint whose tiles define a section's ad slots.
const AdColumnCount = 1

// Options configures one Assemble call.
type Options struct {
	// Placement is the spoc placement whose pool fills section ad slots.
	// Defaults to content.DefaultPlacement.
	Placement string

	// Cursors is the pass-scoped placement cursor map. A fresh map is used
	// when nil.
	Cursors spocs.Cursors

	// Personalization drops sections the user blocked and marks followed ones.
	Personalization map[string]content.SectionPreference
}

// Assemble returns ranked, filled and positioned copies of secs.
//
// Sections are ordered by receivedRank ascending; ties keep their feed order.
// Each section's data is the ordered sublist of recs tagged with its
// sectionKey. Position numbering is global across the returned sections and
// covers at most the section's largest tile count across all breakpoints.
// Neither secs nor recs is modified.
func Assemble(secs []content.Section, recs []content.Item, store content.Spocs, opts Options) []content.Section {
	if opts.Placement == "" {
		opts.Placement = content.DefaultPlacement
	}
	if opts.Cursors == nil {
		opts.Cursors = spocs.NewCursors()
	}

	ranked := make([]content.Section, 0, len(secs))
	for _, s := range secs {
		pref := opts.Personalization[s.SectionKey]
		if pref.IsBlocked {
			continue
		}
		if pref.IsFollowed {
			s.IsFollowed = true
		}
		ranked = append(ranked, s)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ReceivedRank < ranked[j].ReceivedRank
	})

	bySection := groupBySection(recs)
	pool := spocs.ContentPool(store.Pool(opts.Placement))
	blocked := store.BlockList()

	pos := 0
	for i := range ranked {
		s := &ranked[i]
		s.Data = bySection[s.SectionKey]
		if positions := s.Layout.AdPositions(AdColumnCount); len(positions) > 0 && store.Loaded {
			s.Data = spocs.Fill(s.Data, positions, pool, opts.Placement, opts.Cursors, blocked)
		}

		limit := min(s.Layout.MaxTiles(), len(s.Data))
		if limit > 0 {
			// s.Data may still alias the bucket; copy before positioning.
			s.Data = slices.Clone(s.Data)
		}
		for j := 0; j < limit; j++ {
			s.Data[j] = s.Data[j].WithPos(pos)
			pos++
		}
	}
	return ranked
}

// groupBySection buckets recs by section tag, keeping feed order within a bucket.
func groupBySection(recs []content.Item) map[string][]content.Item {
	out := make(map[string][]content.Item)
	for _, it := range recs {
		out[it.Section] = append(out[it.Section], it)
	}
	return out
}
