package layout

import (
	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/spocs"
)

// =============================================================================
// Component Types
// =============================================================================

// Component type tags used by preference filtering.
const (
	TypeTopSites           = "TopSites"
	TypeMessage            = "Message"
	TypeTextPromo          = "TextPromo"
	TypeSectionTitle       = "SectionTitle"
	TypeSignup             = "Signup"
	TypeNavigation         = "Navigation"
	TypeCardGrid           = "CardGrid"
	TypeCollectionCardGrid = "CollectionCardGrid"
	TypeHorizontalRule     = "HorizontalRule"
	TypePrivacyLink        = "PrivacyLink"
)

// StoriesComponents is the sponsored-stories family of component types. They
// are hidden together when the stories feed is turned off.
var StoriesComponents = []string{
	TypeMessage,
	TypeTextPromo,
	TypeSectionTitle,
	TypeSignup,
	TypeNavigation,
	TypeCardGrid,
	TypeCollectionCardGrid,
	TypeHorizontalRule,
	TypePrivacyLink,
}

// =============================================================================
// Layout Configuration
// =============================================================================

// Config is the declarative page layout: an ordered list of rows.
type Config []Row

// Row is one horizontal band of the page.
type Row struct {
	Width      int         `json:"width" bson:"width"`
	Components []Component `json:"components" bson:"components"`
}

// Component is one declared layout element as supplied by the layout service.
// Which fields are set decides how the component is resolved; see [Resolve].
type Component struct {
	Type       string             `json:"type" bson:"type"`
	Header     *Header            `json:"header,omitempty" bson:"header,omitempty"`
	Feed       *FeedRef           `json:"feed,omitempty" bson:"feed,omitempty"`
	Spocs      *SpocsConfig       `json:"spocs,omitempty" bson:"spocs,omitempty"`
	Placement  *content.Placement `json:"placement,omitempty" bson:"placement,omitempty"`
	Properties Properties         `json:"properties,omitempty" bson:"properties,omitempty"`
}

// Header is a component's optional title row.
type Header struct {
	Title string `json:"title" bson:"title"`
}

// FeedRef points a component at a feed by URL.
type FeedRef struct {
	URL string `json:"url" bson:"url"`
}

// SpocsConfig declares where a component accepts sponsored items.
type SpocsConfig struct {
	Positions []content.Position `json:"positions,omitempty" bson:"positions,omitempty"`
	Placement *content.Placement `json:"placement,omitempty" bson:"placement,omitempty"`
}

// Properties holds free-form component properties. Known keys are read with
// the typed accessors; everything else passes through untouched.
type Properties map[string]any

// Property keys read by the engine.
const (
	PropItems  = "items"
	PropOffset = "offset"
)

// Items returns the number of items the component displays, or 0 if unset.
func (p Properties) Items() int { return p.intValue(PropItems) }

// Offset returns the number of leading organic items to skip, or 0 if unset.
func (p Properties) Offset() int { return p.intValue(PropOffset) }

// intValue reads numeric properties regardless of which decoder produced them.
func (p Properties) intValue(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case uint64:
		return int(v)
	}
	return 0
}

// PlacementName resolves the spoc placement the component draws from:
// the spocs block's own placement, then the component placement, then
// [content.DefaultPlacement].
func (c Component) PlacementName() string {
	if c.Spocs != nil && c.Spocs.Placement != nil && c.Spocs.Placement.Name != "" {
		return c.Spocs.Placement.Name
	}
	if c.Placement != nil && c.Placement.Name != "" {
		return c.Placement.Name
	}
	return content.DefaultPlacement
}

// SpocPositions returns the declared spoc positions, or nil.
func (c Component) SpocPositions() []content.Position {
	if c.Spocs == nil {
		return nil
	}
	return c.Spocs.Positions
}

// =============================================================================
// Render Tree
// =============================================================================

// RenderTree is the resolved page handed to the presentation layer.
type RenderTree struct {
	Rows []RenderedRow `json:"rows" bson:"rows"`
}

// RenderedRow is a layout row after preference filtering and resolution.
type RenderedRow struct {
	Width      int                 `json:"width" bson:"width"`
	Components []RenderedComponent `json:"components" bson:"components"`
}

// RenderedComponent is a component with its resolved data attached.
type RenderedComponent struct {
	Component   `bson:",inline"`
	Placeholder bool           `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
	Data        *ComponentData `json:"data,omitempty" bson:"data,omitempty"`
}

// ComponentData is the resolved payload of a data-bearing component.
type ComponentData struct {
	Recommendations []content.Item    `json:"recommendations,omitempty" bson:"recommendations,omitempty"`
	Sections        []content.Section `json:"sections,omitempty" bson:"sections,omitempty"`
	Spocs           []content.Item    `json:"spocs,omitempty" bson:"spocs,omitempty"`
	Banners         []spocs.Banner    `json:"banners,omitempty" bson:"banners,omitempty"`
}

// Components returns every rendered component in layout order.
func (t RenderTree) Components() []RenderedComponent {
	var out []RenderedComponent
	for _, row := range t.Rows {
		out = append(out, row.Components...)
	}
	return out
}
