package content

import (
	"slices"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// DefaultPlacement is the placement used when a component names none.
const DefaultPlacement = "newtab_spocs"

// Spoc formats reserved for banner-style ads. Items with these formats are
// placed by absolute row and never by content position.
const (
	FormatBillboard   = "billboard"
	FormatLeaderboard = "leaderboard"
)

// IsBannerFormat reports whether format is placed by row rather than position.
func IsBannerFormat(format string) bool {
	return format == FormatBillboard || format == FormatLeaderboard
}

// =============================================================================
// Item - Recommendation or Spoc
// =============================================================================

// Item is a single organic recommendation or sponsored story.
//
// Items are treated as values: every transformation copies them before
// changing a field, so an Item read from a store snapshot is never mutated.
type Item struct {
	ID          string `json:"id,omitempty" bson:"id,omitempty"`
	URL         string `json:"url,omitempty" bson:"url,omitempty"`
	Title       string `json:"title,omitempty" bson:"title,omitempty"`
	Excerpt     string `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	Publisher   string `json:"publisher,omitempty" bson:"publisher,omitempty"`
	ImageURL    string `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Section     string `json:"section,omitempty" bson:"section,omitempty"` // sectionKey the item belongs to
	Format      string `json:"format,omitempty" bson:"format,omitempty"`   // spoc format, e.g. "spoc", "billboard"
	Sponsor     string `json:"sponsor,omitempty" bson:"sponsor,omitempty"`
	FlightID    string `json:"flight_id,omitempty" bson:"flight_id,omitempty"`
	Pos         *int   `json:"pos,omitempty" bson:"pos,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty" bson:"placeholder,omitempty"`

	// Decorations written by store transitions.
	OpenURL             string `json:"open_url,omitempty" bson:"open_url,omitempty"`
	PocketID            string `json:"pocket_id,omitempty" bson:"pocket_id,omitempty"`
	BookmarkGUID        string `json:"bookmark_guid,omitempty" bson:"bookmark_guid,omitempty"`
	BookmarkTitle       string `json:"bookmark_title,omitempty" bson:"bookmark_title,omitempty"`
	BookmarkDateCreated int64  `json:"bookmark_date_created,omitempty" bson:"bookmark_date_created,omitempty"`
}

// WithPos returns a copy of the item positioned at pos.
func (it Item) WithPos(pos int) Item {
	it.Pos = &pos
	return it
}

// Position returns the assigned position and whether one was assigned.
func (it Item) Position() (int, bool) {
	if it.Pos == nil {
		return 0, false
	}
	return *it.Pos, true
}

// IsSponsored reports whether the item came from a spoc pool.
func (it Item) IsSponsored() bool {
	return it.FlightID != "" || it.Sponsor != ""
}

// PlaceholderItem returns the stand-in rendered while data is loading.
func PlaceholderItem() Item {
	return Item{Placeholder: true}
}

// =============================================================================
// Section - Topic Grouping
// =============================================================================

// Section is a topic-grouped subset of recommendations with its own tile layout.
type Section struct {
	SectionKey   string        `json:"sectionKey,omitempty" bson:"sectionKey,omitempty"`
	Title        string        `json:"title,omitempty" bson:"title,omitempty"`
	ReceivedRank int           `json:"receivedRank" bson:"receivedRank"`
	Data         []Item        `json:"data,omitempty" bson:"data,omitempty"`
	Layout       SectionLayout `json:"layout" bson:"layout"`
	IsFollowed   bool          `json:"isFollowed,omitempty" bson:"isFollowed,omitempty"`
	Placeholder  bool          `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
}

// SectionLayout lists the breakpoint-specific tile layouts of a section.
type SectionLayout struct {
	Name              string             `json:"name,omitempty" bson:"name,omitempty"`
	ResponsiveLayouts []ResponsiveLayout `json:"responsiveLayouts,omitempty" bson:"responsiveLayouts,omitempty"`
}

// ResponsiveLayout describes the tiles shown at one column count.
type ResponsiveLayout struct {
	ColumnCount int    `json:"columnCount" bson:"columnCount"`
	Tiles       []Tile `json:"tiles" bson:"tiles"`
}

// Tile is one content slot of a responsive layout.
type Tile struct {
	Position   int    `json:"position" bson:"position"`
	Size       string `json:"size,omitempty" bson:"size,omitempty"`
	HasAd      bool   `json:"hasAd,omitempty" bson:"hasAd,omitempty"`
	HasExcerpt bool   `json:"hasExcerpt,omitempty" bson:"hasExcerpt,omitempty"`
}

// MaxTiles returns the largest tile count across all breakpoints.
func (l SectionLayout) MaxTiles() int {
	n := 0
	for _, rl := range l.ResponsiveLayouts {
		n = max(n, len(rl.Tiles))
	}
	return n
}

// AdPositions returns the sponsored slots of the breakpoint with the given
// column count, in tile order. It returns nil if no such breakpoint exists.
func (l SectionLayout) AdPositions(columnCount int) []Position {
	for _, rl := range l.ResponsiveLayouts {
		if rl.ColumnCount != columnCount {
			continue
		}
		var positions []Position
		for _, tile := range rl.Tiles {
			if tile.HasAd {
				positions = append(positions, Position{Index: tile.Position})
			}
		}
		return positions
	}
	return nil
}

// SectionPreference is the user's personalization of one section.
type SectionPreference struct {
	IsFollowed bool  `json:"isFollowed,omitempty" bson:"isFollowed,omitempty"`
	IsBlocked  bool  `json:"isBlocked,omitempty" bson:"isBlocked,omitempty"`
	FollowedAt int64 `json:"followedAt,omitempty" bson:"followedAt,omitempty"`
}

// =============================================================================
// Feed - Organic Content
// =============================================================================

// FeedData is the payload of one fetched feed.
type FeedData struct {
	Recommendations []Item    `json:"recommendations" bson:"recommendations"`
	Sections        []Section `json:"sections,omitempty" bson:"sections,omitempty"`
}

// Feed is one feed entry keyed by its URL.
type Feed struct {
	Data        FeedData `json:"data" bson:"data"`
	Loaded      bool     `json:"loaded" bson:"loaded"`
	LastUpdated int64    `json:"lastUpdated,omitempty" bson:"lastUpdated,omitempty"`
}

// Feeds holds every fetched feed. Loaded flips to true once the initial
// round of feed fetches has completed.
type Feeds struct {
	Data   map[string]Feed `json:"data" bson:"data"`
	Loaded bool            `json:"loaded" bson:"loaded"`
}

// Lookup returns the feed for url if it exists and has finished loading.
func (f Feeds) Lookup(url string) (Feed, bool) {
	feed, ok := f.Data[url]
	if !ok || !feed.Loaded {
		return Feed{}, false
	}
	return feed, true
}

// =============================================================================
// Spocs - Sponsored Content
// =============================================================================

// Position is a declared insertion index for a sponsored item.
type Position struct {
	Index int `json:"index" bson:"index"`
}

// Placement names a slot family whose items share one cursor-tracked pool.
type Placement struct {
	Name string `json:"name" bson:"name"`
}

// PlacementData holds the sponsored items fetched for one placement.
type PlacementData struct {
	Items   []Item `json:"items" bson:"items"`
	Title   string `json:"title,omitempty" bson:"title,omitempty"`
	Context string `json:"context,omitempty" bson:"context,omitempty"`
}

// FrequencyCap records a flight that was capped out by the fetch collaborator.
type FrequencyCap struct {
	FlightID string `json:"flight_id" bson:"flight_id"`
	Lifetime int    `json:"lifetime,omitempty" bson:"lifetime,omitempty"`
	Count    int    `json:"count,omitempty" bson:"count,omitempty"`
	Period   int    `json:"period,omitempty" bson:"period,omitempty"`
}

// Spocs is the sponsored-content sub-state.
type Spocs struct {
	Endpoint      string                   `json:"spocs_endpoint,omitempty" bson:"spocs_endpoint,omitempty"`
	LastUpdated   int64                    `json:"lastUpdated,omitempty" bson:"lastUpdated,omitempty"`
	Data          map[string]PlacementData `json:"data" bson:"data"`
	Blocked       []string                 `json:"blocked" bson:"blocked"`
	Placements    []Placement              `json:"placements,omitempty" bson:"placements,omitempty"`
	FrequencyCaps []FrequencyCap           `json:"frequency_caps,omitempty" bson:"frequency_caps,omitempty"`
	Loaded        bool                     `json:"loaded" bson:"loaded"`
}

// Pool returns the items of placement, or nil if the placement has no data.
func (s Spocs) Pool(placement string) []Item {
	return s.Data[placement].Items
}

// BlockList returns the blocked urls as a set.
func (s Spocs) BlockList() BlockList {
	return NewBlockList(s.Blocked...)
}

// IsBlocked reports whether url was blocked by the user.
func (s Spocs) IsBlocked(url string) bool {
	return slices.Contains(s.Blocked, url)
}

// =============================================================================
// BlockList
// =============================================================================

// BlockList is a set of urls that must never be rendered.
type BlockList map[string]struct{}

// NewBlockList returns a BlockList holding urls.
func NewBlockList(urls ...string) BlockList {
	b := make(BlockList, len(urls))
	for _, u := range urls {
		b[u] = struct{}{}
	}
	return b
}

// Has reports whether url is blocked. A nil BlockList blocks nothing.
func (b BlockList) Has(url string) bool {
	_, ok := b[url]
	return ok
}
