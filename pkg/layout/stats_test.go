package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/errors"
	"github.com/matzehuels/contentstack/pkg/spocs"
)

func treeOf(comps ...RenderedComponent) RenderTree {
	return RenderTree{Rows: []RenderedRow{{Width: 12, Components: comps}}}
}

func TestStats(t *testing.T) {
	organic := recs(2)
	spoc := spocItems(1)[0]
	billboard := content.Item{URL: "https://ads.example.com/bb", FlightID: "bb", Format: content.FormatBillboard}

	tests := []struct {
		name string
		tree RenderTree
		want Stats
	}{
		{
			name: "flat feed with a spoc",
			tree: treeOf(RenderedComponent{
				Component: cardGrid(3),
				Data:      &ComponentData{Recommendations: []content.Item{organic[0], spoc, organic[1]}},
			}),
			want: Stats{Rows: 1, Components: 1, Recommendations: 2, Spocs: 1},
		},
		{
			name: "sections mode counts grouped items once",
			tree: treeOf(RenderedComponent{
				Component: cardGrid(0),
				Data: &ComponentData{
					Recommendations: organic,
					Sections: []content.Section{
						{SectionKey: "tech", Data: []content.Item{organic[0], spoc, organic[1]}},
					},
				},
			}),
			want: Stats{Rows: 1, Components: 1, Recommendations: 2, Sections: 1, Spocs: 1},
		},
		{
			name: "spocs component and banner",
			tree: treeOf(
				RenderedComponent{Component: Component{Type: "Spocs"}, Data: &ComponentData{Spocs: []content.Item{spoc}}},
				RenderedComponent{
					Component: cardGrid(1),
					Data: &ComponentData{
						Recommendations: organic[:1],
						Banners:         []spocs.Banner{{Format: content.FormatBillboard, Row: 2, Item: billboard}},
					},
				},
			),
			want: Stats{Rows: 1, Components: 2, Recommendations: 1, Spocs: 1, Billboards: 1},
		},
		{
			name: "placeholders and static components",
			tree: treeOf(
				RenderedComponent{Component: cardGrid(3), Placeholder: true,
					Data: &ComponentData{Recommendations: []content.Item{content.PlaceholderItem()}}},
				RenderedComponent{Component: Component{Type: TypeHorizontalRule}},
			),
			want: Stats{Rows: 1, Components: 2, Placeholders: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tree.Stats()
			if err != nil {
				t.Fatalf("Stats() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStatsRejectsUnknownBannerFormat(t *testing.T) {
	for _, format := range []string{"skyscraper", "spoc", ""} {
		t.Run(format, func(t *testing.T) {
			tree := treeOf(RenderedComponent{
				Component: cardGrid(1),
				Data:      &ComponentData{Banners: []spocs.Banner{{Format: format, Row: 1}}},
			})
			if _, err := tree.Stats(); !errors.Is(err, errors.ErrCodeUnsupportedAdType) {
				t.Errorf("Stats() error = %v, want %s", err, errors.ErrCodeUnsupportedAdType)
			}
		})
	}
}
