package state

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/errors"
	"github.com/matzehuels/contentstack/pkg/layout"
)

// Event is a state transition request. Events are plain values; [Reduce]
// decides what each one does.
type Event interface {
	Type() string
}

// gated marks events that touch feeds and spocs together. They apply only
// once [IsReady] holds.
type gated interface {
	Event
	requiresReady()
}

// Event type names used in the JSON envelope.
const (
	TypeConfigChange                 = "CONFIG_CHANGE"
	TypeLayoutUpdate                 = "LAYOUT_UPDATE"
	TypeLayoutReset                  = "LAYOUT_RESET"
	TypeFeedsUpdate                  = "FEEDS_UPDATE"
	TypeFeedUpdate                   = "FEED_UPDATE"
	TypeSpocsEndpoint                = "SPOCS_ENDPOINT"
	TypeSpocsPlacements              = "SPOCS_PLACEMENTS"
	TypeSpocsUpdate                  = "SPOCS_UPDATE"
	TypeSpocsCaps                    = "SPOCS_CAPS"
	TypeSpocBlocked                  = "SPOC_BLOCKED"
	TypeLinkBlocked                  = "LINK_BLOCKED"
	TypeBookmarkAdded                = "BOOKMARK_ADDED"
	TypeBookmarksRemoved             = "BOOKMARKS_REMOVED"
	TypeSavedToPocket                = "SAVED_TO_POCKET"
	TypeDeletedFromPocket            = "DELETED_FROM_POCKET"
	TypeArchivedFromPocket           = "ARCHIVED_FROM_POCKET"
	TypeSectionPersonalizationUpdate = "SECTION_PERSONALIZATION_UPDATE"
	TypePrefsUpdate                  = "PREFS_UPDATE"
)

// =============================================================================
// Configuration and layout
// =============================================================================

// ConfigChange replaces the engine configuration.
type ConfigChange struct {
	Config Config `json:"config"`
}

// LayoutUpdate replaces the page layout.
type LayoutUpdate struct {
	Layout      layout.Config `json:"layout"`
	LastUpdated int64         `json:"last_updated,omitempty"`
}

// LayoutReset clears the layout.
type LayoutReset struct{}

// PrefsUpdate replaces the preferences.
type PrefsUpdate struct {
	Prefs layout.Preferences `json:"prefs"`
}

// SectionPersonalizationUpdate replaces the per-section follow/block choices.
type SectionPersonalizationUpdate struct {
	Sections map[string]content.SectionPreference `json:"sections"`
}

// =============================================================================
// Feeds
// =============================================================================

// FeedsUpdate marks the feeds as loaded.
type FeedsUpdate struct {
	LastUpdated int64 `json:"last_updated,omitempty"`
}

// FeedUpdate replaces one feed wholesale.
type FeedUpdate struct {
	URL  string       `json:"url"`
	Feed content.Feed `json:"feed"`
}

// =============================================================================
// Spocs
// =============================================================================

// SpocsEndpoint switches the spoc endpoint and resets the spoc sub-state.
type SpocsEndpoint struct {
	URL string `json:"url"`
}

// SpocsPlacements switches the spoc placements and resets the spoc sub-state.
type SpocsPlacements struct {
	Placements []content.Placement `json:"placements"`
}

// SpocsUpdate delivers spoc data and marks spocs as loaded.
type SpocsUpdate struct {
	Data        map[string]content.PlacementData `json:"data"`
	LastUpdated int64                            `json:"last_updated,omitempty"`
}

// SpocsCaps replaces the frequency caps.
type SpocsCaps struct {
	Caps []content.FrequencyCap `json:"frequency_caps"`
}

// SpocBlocked blocks a sponsored url. It touches spocs only and is never
// gated.
type SpocBlocked struct {
	URL string `json:"url"`
}

// =============================================================================
// Joint feed and spoc transitions (gated)
// =============================================================================

// LinkBlocked removes a url from every feed and placement and blocks it.
type LinkBlocked struct {
	URL string `json:"url"`
}

// BookmarkAdded decorates items with url as bookmarked.
type BookmarkAdded struct {
	URL         string `json:"url"`
	GUID        string `json:"bookmark_guid"`
	Title       string `json:"bookmark_title,omitempty"`
	DateCreated int64  `json:"date_added,omitempty"`
}

// BookmarksRemoved clears the bookmark decoration of items with the given urls.
type BookmarksRemoved struct {
	URLs []string `json:"urls"`
}

// SavedToPocket decorates items with url as saved.
type SavedToPocket struct {
	URL      string `json:"url"`
	PocketID string `json:"pocket_id"`
	OpenURL  string `json:"open_url,omitempty"`
}

// DeletedFromPocket removes the items saved under PocketID.
type DeletedFromPocket struct {
	PocketID string `json:"pocket_id"`
}

// ArchivedFromPocket removes the items saved under PocketID.
type ArchivedFromPocket struct {
	PocketID string `json:"pocket_id"`
}

func (ConfigChange) Type() string                 { return TypeConfigChange }
func (LayoutUpdate) Type() string                 { return TypeLayoutUpdate }
func (LayoutReset) Type() string                  { return TypeLayoutReset }
func (PrefsUpdate) Type() string                  { return TypePrefsUpdate }
func (SectionPersonalizationUpdate) Type() string { return TypeSectionPersonalizationUpdate }
func (FeedsUpdate) Type() string                  { return TypeFeedsUpdate }
func (FeedUpdate) Type() string                   { return TypeFeedUpdate }
func (SpocsEndpoint) Type() string                { return TypeSpocsEndpoint }
func (SpocsPlacements) Type() string              { return TypeSpocsPlacements }
func (SpocsUpdate) Type() string                  { return TypeSpocsUpdate }
func (SpocsCaps) Type() string                    { return TypeSpocsCaps }
func (SpocBlocked) Type() string                  { return TypeSpocBlocked }
func (LinkBlocked) Type() string                  { return TypeLinkBlocked }
func (BookmarkAdded) Type() string                { return TypeBookmarkAdded }
func (BookmarksRemoved) Type() string             { return TypeBookmarksRemoved }
func (SavedToPocket) Type() string                { return TypeSavedToPocket }
func (DeletedFromPocket) Type() string            { return TypeDeletedFromPocket }
func (ArchivedFromPocket) Type() string           { return TypeArchivedFromPocket }

func (LinkBlocked) requiresReady()        {}
func (BookmarkAdded) requiresReady()      {}
func (BookmarksRemoved) requiresReady()   {}
func (SavedToPocket) requiresReady()      {}
func (DeletedFromPocket) requiresReady()  {}
func (ArchivedFromPocket) requiresReady() {}

// Gated reports whether ev applies only once [IsReady] holds.
func Gated(ev Event) bool {
	_, ok := ev.(gated)
	return ok
}

// =============================================================================
// JSON envelope
// =============================================================================

// Envelope is the wire form of an event: {"type": ..., "data": {...}}.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

var decoders = map[string]func(json.RawMessage) (Event, error){
	TypeConfigChange:                 decodeAs[ConfigChange],
	TypeLayoutUpdate:                 decodeLayoutUpdate,
	TypeLayoutReset:                  decodeAs[LayoutReset],
	TypePrefsUpdate:                  decodePrefs,
	TypeSectionPersonalizationUpdate: decodeAs[SectionPersonalizationUpdate],
	TypeFeedsUpdate:                  decodeAs[FeedsUpdate],
	TypeFeedUpdate:                   decodeAs[FeedUpdate],
	TypeSpocsEndpoint:                decodeAs[SpocsEndpoint],
	TypeSpocsPlacements:              decodeAs[SpocsPlacements],
	TypeSpocsUpdate:                  decodeAs[SpocsUpdate],
	TypeSpocsCaps:                    decodeAs[SpocsCaps],
	TypeSpocBlocked:                  decodeAs[SpocBlocked],
	TypeLinkBlocked:                  decodeAs[LinkBlocked],
	TypeBookmarkAdded:                decodeAs[BookmarkAdded],
	TypeBookmarksRemoved:             decodeAs[BookmarksRemoved],
	TypeSavedToPocket:                decodeAs[SavedToPocket],
	TypeDeletedFromPocket:            decodeAs[DeletedFromPocket],
	TypeArchivedFromPocket:           decodeAs[ArchivedFromPocket],
}

func decodeAs[E Event](data json.RawMessage) (Event, error) {
	var ev E
	if len(data) == 0 {
		return ev, nil
	}
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// decodeLayoutUpdate holds event-supplied layouts to the same checks as
// imported state files.
func decodeLayoutUpdate(data json.RawMessage) (Event, error) {
	ev, err := decodeAs[LayoutUpdate](data)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(ev.(LayoutUpdate).Layout); err != nil {
		return nil, err
	}
	return ev, nil
}

// decodePrefs starts from the default preferences so keys missing from the
// payload keep their default value.
func decodePrefs(data json.RawMessage) (Event, error) {
	ev := PrefsUpdate{Prefs: layout.DefaultPreferences()}
	if len(data) == 0 {
		return ev, nil
	}
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// DecodeEnvelope turns an envelope into its typed event. Unknown types and
// malformed payloads return INVALID_EVENT; a layout that fails validation
// keeps its INVALID_LAYOUT code.
func DecodeEnvelope(env Envelope) (Event, error) {
	decode, ok := decoders[env.Type]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidEvent, "unknown event type %q", env.Type)
	}
	ev, err := decode(env.Data)
	if errors.Is(err, errors.ErrCodeInvalidLayout) {
		return nil, fmt.Errorf("decode %s: %w", env.Type, err)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "decode %s", env.Type)
	}
	return ev, nil
}

// DecodeEvent decodes one JSON envelope.
func DecodeEvent(data []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "decode event envelope")
	}
	return DecodeEnvelope(env)
}

// EncodeEvent returns the envelope for ev.
func EncodeEvent(ev Event) (Envelope, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return Envelope{}, errors.Wrap(errors.ErrCodeInvalidEvent, err, "encode %s", ev.Type())
	}
	return Envelope{Type: ev.Type(), Data: data}, nil
}
