package layout

import (
	"fmt"
	"slices"

	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/dedupe"
	"github.com/matzehuels/contentstack/pkg/errors"
	"github.com/matzehuels/contentstack/pkg/sections"
	"github.com/matzehuels/contentstack/pkg/spocs"
)

// Input is everything one resolution pass reads. Resolve never modifies it.
type Input struct {
	Layout          Config
	Feeds           content.Feeds
	Spocs           content.Spocs
	Prefs           Preferences
	Personalization map[string]content.SectionPreference
}

// pass holds the state of a single Resolve call. Both cursor maps start empty
// on every call and are dropped when it returns.
type pass struct {
	in        Input
	blocked   content.BlockList
	positions map[string]int // component type -> next pos
	cursors   spocs.Cursors  // placement -> consumed pool items
	banners   []spocs.BannerRequest
	placed    bool     // banners already attached to a feed component
	shown     []string // urls claimed by earlier feed components (DedupeFeeds)
}

// Resolve assembles the render tree for one snapshot of layout, feeds, spocs
// and preferences.
//
// Rows are walked in order. Components hidden by preferences are dropped, and
// so are rows left empty. Every remaining component is resolved by the branch
// [classify] picks for it:
//
//   - feed: copy the feed's recommendations, apply the offset, then either
//     assemble sections or fill sponsored positions; number the first
//     properties.items recommendations from the component type's cursor
//   - spocs only: list the placement's unblocked items numbered by index
//   - static: pass through unchanged
//
// A component whose feed has not loaded, or which declares spoc positions
// while spocs have not loaded, becomes a placeholder instead.
//
// Resolve is deterministic: identical inputs produce identical trees. The only
// error it returns is UNSUPPORTED_AD_TYPE for an unknown banner size in prefs.
func Resolve(in Input) (RenderTree, error) {
	p := &pass{
		in:        in,
		blocked:   in.Spocs.BlockList(),
		positions: make(map[string]int),
		cursors:   spocs.NewCursors(),
	}
	for _, req := range in.Prefs.Banners {
		t, err := spocs.ParseAdType(string(req.Type))
		if err != nil {
			return RenderTree{}, err
		}
		if !t.IsBanner() {
			return RenderTree{}, errors.New(errors.ErrCodeUnsupportedAdType,
				"ad type %q is not a banner size", t)
		}
		p.banners = append(p.banners, spocs.BannerRequest{Type: t, Row: req.Row})
	}

	tree := RenderTree{Rows: []RenderedRow{}}
	for _, row := range in.Layout {
		var comps []RenderedComponent
		for _, c := range row.Components {
			if in.Prefs.Hidden(c.Type) {
				continue
			}
			comps = append(comps, p.resolveComponent(c))
		}
		if len(comps) == 0 {
			continue
		}
		tree.Rows = append(tree.Rows, RenderedRow{Width: row.Width, Components: comps})
	}
	return tree, nil
}

func (p *pass) resolveComponent(c Component) RenderedComponent {
	switch v := classify(c).(type) {
	case feedVariant:
		if _, ok := p.in.Feeds.Lookup(v.url); !ok || p.waitsForSpocs(v.positions) {
			return p.placeholder(c, v.items)
		}
		return p.resolveFeed(c, v)
	case spocVariant:
		if p.waitsForSpocs(v.positions) {
			return p.placeholder(c, v.items)
		}
		return p.resolveSpocs(c, v)
	case staticVariant:
		return RenderedComponent{Component: c}
	default:
		panic(fmt.Sprintf("layout: unhandled component variant %T", v))
	}
}

// waitsForSpocs reports whether a component declaring positions must wait for
// the spoc store. With sponsored content switched off spocs never load, so
// nothing waits for them.
func (p *pass) waitsForSpocs(positions []content.Position) bool {
	return len(positions) > 0 && p.in.Prefs.ShowSponsored && !p.in.Spocs.Loaded
}

// sponsored returns the spoc store as seen by this pass: empty when the user
// disabled sponsored content.
func (p *pass) sponsored() content.Spocs {
	if !p.in.Prefs.ShowSponsored {
		return content.Spocs{Blocked: p.in.Spocs.Blocked}
	}
	return p.in.Spocs
}

func (p *pass) placeholder(c Component, items int) RenderedComponent {
	if items <= 0 {
		items = DefaultPlaceholderItems
	}
	data := &ComponentData{Recommendations: make([]content.Item, items)}
	for i := range data.Recommendations {
		data.Recommendations[i] = content.PlaceholderItem()
	}
	if p.in.Prefs.SectionsEnabled {
		data.Sections = make([]content.Section, items)
		for i := range data.Sections {
			data.Sections[i] = content.Section{Placeholder: true}
		}
	}
	return RenderedComponent{Component: c, Placeholder: true, Data: data}
}

func (p *pass) resolveFeed(c Component, v feedVariant) RenderedComponent {
	feed, _ := p.in.Feeds.Lookup(v.url)

	recs := make([]content.Item, 0, len(feed.Data.Recommendations))
	for _, it := range feed.Data.Recommendations {
		if !p.blocked.Has(it.URL) {
			recs = append(recs, it)
		}
	}
	recs = recs[min(max(v.offset, 0), len(recs)):]
	if p.in.Prefs.DedupeFeeds {
		byURL := dedupe.New(func(it content.Item) string { return it.URL })
		claimed := make([]content.Item, len(p.shown))
		for i, u := range p.shown {
			claimed[i] = content.Item{URL: u}
		}
		recs = byURL.Group(claimed, recs)[1]
	}

	data := &ComponentData{}
	store := p.sponsored()
	if p.in.Prefs.SectionsEnabled {
		data.Sections = sections.Assemble(feed.Data.Sections, recs, store, sections.Options{
			Placement:       v.placement,
			Cursors:         p.cursors,
			Personalization: p.in.Personalization,
		})
	} else if store.Loaded {
		recs = spocs.Fill(recs, v.positions, spocs.ContentPool(store.Pool(v.placement)),
			v.placement, p.cursors, p.blocked)
	}

	recs = slices.Clone(recs)
	n := min(v.items, len(recs))
	for i := 0; i < n; i++ {
		recs[i] = recs[i].WithPos(p.positions[c.Type])
		p.positions[c.Type]++
	}
	data.Recommendations = recs

	if p.in.Prefs.DedupeFeeds {
		shown := recs
		if v.items > 0 {
			shown = recs[:n]
		}
		for _, it := range shown {
			if !it.IsSponsored() {
				p.shown = append(p.shown, it.URL)
			}
		}
	}

	data.Banners = p.placeBanners(v.placement, store)
	return RenderedComponent{Component: c, Data: data}
}

// placeBanners attaches the requested banner sizes to the first resolved feed
// component of the page.
func (p *pass) placeBanners(placement string, store content.Spocs) []spocs.Banner {
	if p.placed || len(p.banners) == 0 || !store.Loaded {
		return nil
	}
	p.placed = true

	var out []spocs.Banner
	for _, req := range p.banners {
		b, ok := spocs.PlaceBanner(store.Pool(placement), placement, req.Type, p.cursors, p.blocked)
		if !ok {
			continue
		}
		b.Row = req.Row
		out = append(out, b)
	}
	return out
}

func (p *pass) resolveSpocs(c Component, v spocVariant) RenderedComponent {
	store := p.sponsored()
	data := &ComponentData{}
	if !store.Loaded {
		return RenderedComponent{Component: c, Data: data}
	}
	for _, it := range store.Pool(v.placement) {
		if p.blocked.Has(it.URL) {
			continue
		}
		data.Spocs = append(data.Spocs, it.WithPos(len(data.Spocs)))
	}
	return RenderedComponent{Component: c, Data: data}
}
