package spocs

import (
	"github.com/matzehuels/contentstack/pkg/content"
)

// Banner is a banner-format spoc pinned to an absolute row of a grid.
type Banner struct {
	Format string       `json:"format"`
	Row    int          `json:"row"`
	Item   content.Item `json:"item"`
}

// BannerRequest asks for one banner of Type at Row.
type BannerRequest struct {
	Type AdType `json:"type"`
	Row  int    `json:"row"`
}

// bannerCursor is the Cursors key tracking a placement's banners of one format.
// It cannot collide with a placement name because ':' is not allowed in one.
func bannerCursor(placement string, t AdType) string {
	return placement + ":" + string(t)
}

// PlaceBanner takes the next unblocked item of format t from pool.
//
// Banner items are consumed through their own cursor so they never interact
// with content-position filling. Blocked banners are consumed and skipped.
// It returns false once the pool has no further banner of that format.
func PlaceBanner(pool []content.Item, placement string, t AdType,
	cursors Cursors, blocked content.BlockList) (Banner, bool) {
	var candidates []content.Item
	for _, it := range pool {
		if it.Format == string(t) {
			candidates = append(candidates, it)
		}
	}

	key := bannerCursor(placement, t)
	for cursors[key] < len(candidates) {
		it := candidates[cursors[key]]
		cursors[key]++
		if blocked.Has(it.URL) {
			continue
		}
		return Banner{Format: string(t), Item: it}, true
	}
	return Banner{}, false
}
