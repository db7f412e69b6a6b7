package layout

import (
	"slices"

	"github.com/matzehuels/contentstack/pkg/spocs"
)

// DefaultPlaceholderItems is the number of placeholder cards shown for a
// loading component that does not declare an item count.
const DefaultPlaceholderItems = 3

// Preferences are the user and feature toggles read by [Resolve].
// The JSON names follow the browser preference names they mirror.
type Preferences struct {
	TopSites          bool `json:"feeds.topsites" bson:"topsites"`
	TopStoriesSection bool `json:"feeds.section.topstories" bson:"topstories_section"`
	SystemTopStories  bool `json:"feeds.system.topstories" bson:"system_topstories"`
	ShowSponsored     bool `json:"showSponsored" bson:"show_sponsored"`
	SectionsEnabled   bool `json:"discoverystream.sections.enabled" bson:"sections_enabled"`

	// DedupeFeeds hides a recommendation already shown by an earlier feed
	// component of the same page.
	DedupeFeeds bool `json:"discoverystream.dedupe.enabled" bson:"dedupe_feeds"`

	// Banners lists the banner ad sizes to place, each pinned to a grid row.
	Banners []spocs.BannerRequest `json:"newtabAdSize,omitempty" bson:"banners,omitempty"`
}

// DefaultPreferences returns the preferences of a fresh profile.
func DefaultPreferences() Preferences {
	return Preferences{
		TopSites:          true,
		TopStoriesSection: true,
		SystemTopStories:  true,
		ShowSponsored:     true,
	}
}

// StoriesEnabled reports whether the stories feed is switched on both by the
// user and by the system.
func (p Preferences) StoriesEnabled() bool {
	return p.TopStoriesSection && p.SystemTopStories
}

// Hidden reports whether components of componentType are filtered out.
func (p Preferences) Hidden(componentType string) bool {
	if componentType == TypeTopSites && !p.TopSites {
		return true
	}
	if !p.StoriesEnabled() && slices.Contains(StoriesComponents, componentType) {
		return true
	}
	return false
}
