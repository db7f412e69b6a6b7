package state

import (
	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/layout"
)

// Config is the engine configuration delivered by the host.
type Config struct {
	Enabled        bool   `json:"enabled" bson:"enabled"`
	LayoutEndpoint string `json:"layout_endpoint,omitempty" bson:"layout_endpoint,omitempty"`
	SpocsEndpoint  string `json:"spocs_endpoint,omitempty" bson:"spocs_endpoint,omitempty"`
}

// State is the complete content state the render tree is derived from.
//
// A State is never modified in place. Every transition returns a new value
// sharing unchanged parts with its predecessor, so a State handed out by
// [Store.Snapshot] stays valid for as long as the caller holds it. Callers
// must treat it as read-only.
type State struct {
	Config            Config        `json:"config" bson:"config"`
	Layout            layout.Config `json:"layout" bson:"layout"`
	LayoutLastUpdated int64         `json:"layout_last_updated,omitempty" bson:"layout_last_updated,omitempty"`
	Feeds             content.Feeds `json:"feeds" bson:"feeds"`
	Spocs             content.Spocs `json:"spocs" bson:"spocs"`

	SectionPersonalization map[string]content.SectionPreference `json:"section_personalization,omitempty" bson:"section_personalization,omitempty"`
	Prefs                  layout.Preferences                   `json:"prefs" bson:"prefs"`
}

// Initial returns the state of a fresh profile: nothing loaded, default
// preferences.
func Initial() State {
	return State{
		Feeds: content.Feeds{Data: map[string]content.Feed{}},
		Spocs: InitialSpocs(),
		Prefs: layout.DefaultPreferences(),
	}
}

// InitialSpocs returns the spoc sub-state before any spoc data arrived.
func InitialSpocs() content.Spocs {
	return content.Spocs{
		Data:    map[string]content.PlacementData{},
		Blocked: []string{},
	}
}

// IsReady reports whether both feeds and spocs have loaded. Transitions that
// touch feeds and spocs together are dropped until it holds.
func IsReady(s State) bool {
	return s.Feeds.Loaded && s.Spocs.Loaded
}

// Input returns the resolution input for s.
func (s State) Input() layout.Input {
	return layout.Input{
		Layout:          s.Layout,
		Feeds:           s.Feeds,
		Spocs:           s.Spocs,
		Prefs:           s.Prefs,
		Personalization: s.SectionPersonalization,
	}
}
