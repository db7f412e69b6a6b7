package layout

import (
	"github.com/matzehuels/contentstack/pkg/content"
)

// variant is the resolution branch a declared component falls into. Each
// implementation carries only the fields its branch reads; [classify] is the
// single place that inspects the loosely-shaped [Component].
type variant interface {
	isVariant()
}

// feedVariant is a component backed by an organic feed, optionally with
// sponsored slots.
type feedVariant struct {
	url       string
	items     int
	offset    int
	positions []content.Position
	placement string
}

// spocVariant is a component that renders a placement's sponsored items
// directly, without a feed.
type spocVariant struct {
	items     int
	positions []content.Position
	placement string
}

// staticVariant is a component without data (rules, links, promos).
type staticVariant struct{}

func (feedVariant) isVariant()   {}
func (spocVariant) isVariant()   {}
func (staticVariant) isVariant() {}

// classify maps a declared component to its resolution branch.
func classify(c Component) variant {
	switch {
	case c.Feed != nil:
		return feedVariant{
			url:       c.Feed.URL,
			items:     c.Properties.Items(),
			offset:    c.Properties.Offset(),
			positions: c.SpocPositions(),
			placement: c.PlacementName(),
		}
	case c.Spocs != nil:
		return spocVariant{
			items:     c.Properties.Items(),
			positions: c.SpocPositions(),
			placement: c.PlacementName(),
		}
	default:
		return staticVariant{}
	}
}
