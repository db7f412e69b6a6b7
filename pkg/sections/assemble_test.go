package sections

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/spocs"
)

// layoutWithTiles returns a section layout with a single-column breakpoint of
// n tiles (ads at adTiles) and a four-column breakpoint of wide tiles.
func layoutWithTiles(n, wide int, adTiles ...int) content.SectionLayout {
	narrow := content.ResponsiveLayout{ColumnCount: 1}
	for i := 0; i < n; i++ {
		tile := content.Tile{Position: i}
		for _, a := range adTiles {
			if a == i {
				tile.HasAd = true
			}
		}
		narrow.Tiles = append(narrow.Tiles, tile)
	}
	broad := content.ResponsiveLayout{ColumnCount: 4}
	for i := 0; i < wide; i++ {
		broad.Tiles = append(broad.Tiles, content.Tile{Position: i})
	}
	return content.SectionLayout{ResponsiveLayouts: []content.ResponsiveLayout{broad, narrow}}
}

func rec(url, section string) content.Item {
	return content.Item{ID: url, URL: url, Section: section}
}

func loadedSpocs(urls ...string) content.Spocs {
	items := make([]content.Item, len(urls))
	for i, u := range urls {
		items[i] = content.Item{ID: u, URL: u, FlightID: u}
	}
	return content.Spocs{
		Loaded: true,
		Data:   map[string]content.PlacementData{content.DefaultPlacement: {Items: items}},
	}
}

func dataURLs(s content.Section) []string {
	out := make([]string, len(s.Data))
	for i, it := range s.Data {
		out[i] = it.URL
	}
	return out
}

func positions(s content.Section) []int {
	var out []int
	for _, it := range s.Data {
		if p, ok := it.Position(); ok {
			out = append(out, p)
		}
	}
	return out
}

func TestAssembleRanksAndGroups(t *testing.T) {
	secs := []content.Section{
		{SectionKey: "sports", ReceivedRank: 2, Layout: layoutWithTiles(2, 2)},
		{SectionKey: "tech", ReceivedRank: 0, Layout: layoutWithTiles(2, 2)},
		{SectionKey: "arts", ReceivedRank: 1, Layout: layoutWithTiles(2, 2)},
	}
	recs := []content.Item{
		rec("t1", "tech"), rec("s1", "sports"), rec("t2", "tech"), rec("a1", "arts"),
	}

	got := Assemble(secs, recs, content.Spocs{}, Options{})

	var keys []string
	for _, s := range got {
		keys = append(keys, s.SectionKey)
	}
	if diff := cmp.Diff([]string{"tech", "arts", "sports"}, keys); diff != "" {
		t.Errorf("section order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"t1", "t2"}, dataURLs(got[0])); diff != "" {
		t.Errorf("tech data mismatch (-want +got):\n%s", diff)
	}

	// Input order is untouched.
	if secs[0].SectionKey != "sports" || secs[0].Data != nil {
		t.Error("Assemble modified its input sections")
	}
}

func TestAssembleStableRankTies(t *testing.T) {
	secs := []content.Section{
		{SectionKey: "b", ReceivedRank: 1},
		{SectionKey: "a", ReceivedRank: 1},
		{SectionKey: "c", ReceivedRank: 0},
	}
	got := Assemble(secs, nil, content.Spocs{}, Options{})
	if got[0].SectionKey != "c" || got[1].SectionKey != "b" || got[2].SectionKey != "a" {
		t.Errorf("order = %s %s %s, want c b a", got[0].SectionKey, got[1].SectionKey, got[2].SectionKey)
	}
	for _, s := range got {
		if s.Data != nil {
			t.Errorf("section %s without recommendations has data %v", s.SectionKey, s.Data)
		}
	}
}

func TestAssembleSpocCursorNonRepetition(t *testing.T) {
	secs := []content.Section{
		{SectionKey: "first", ReceivedRank: 0, Layout: layoutWithTiles(3, 3, 1)},
		{SectionKey: "second", ReceivedRank: 1, Layout: layoutWithTiles(3, 3, 1)},
	}
	recs := []content.Item{
		rec("f1", "first"), rec("f2", "first"),
		rec("s1", "second"), rec("s2", "second"),
	}

	got := Assemble(secs, recs, loadedSpocs("spoc-0", "spoc-1"), Options{})

	if diff := cmp.Diff([]string{"f1", "spoc-0", "f2"}, dataURLs(got[0])); diff != "" {
		t.Errorf("first section mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"s1", "spoc-1", "s2"}, dataURLs(got[1])); diff != "" {
		t.Errorf("second section mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleGlobalPositions(t *testing.T) {
	secs := []content.Section{
		// Largest breakpoint has 2 tiles: only the first two items are positioned.
		{SectionKey: "a", ReceivedRank: 0, Layout: layoutWithTiles(1, 2)},
		{SectionKey: "b", ReceivedRank: 1, Layout: layoutWithTiles(3, 1)},
	}
	recs := []content.Item{
		rec("a1", "a"), rec("a2", "a"), rec("a3", "a"),
		rec("b1", "b"), rec("b2", "b"),
	}

	got := Assemble(secs, recs, content.Spocs{}, Options{})

	if diff := cmp.Diff([]int{0, 1}, positions(got[0])); diff != "" {
		t.Errorf("section a positions (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 3}, positions(got[1])); diff != "" {
		t.Errorf("section b positions (-want +got):\n%s", diff)
	}
	for _, it := range recs {
		if it.Pos != nil {
			t.Fatalf("input recommendation %s was positioned", it.URL)
		}
	}
}

func TestAssembleSharedCursorWithCaller(t *testing.T) {
	cursors := spocs.NewCursors()
	cursors[content.DefaultPlacement] = 1 // an earlier component already showed spoc-0

	secs := []content.Section{{SectionKey: "a", Layout: layoutWithTiles(2, 2, 0)}}
	got := Assemble(secs, []content.Item{rec("a1", "a")}, loadedSpocs("spoc-0", "spoc-1"),
		Options{Cursors: cursors})

	if got[0].Data[0].URL != "spoc-1" {
		t.Errorf("first item = %s, want spoc-1", got[0].Data[0].URL)
	}
	if cursors[content.DefaultPlacement] != 2 {
		t.Errorf("cursor = %d, want 2", cursors[content.DefaultPlacement])
	}
}

func TestAssembleBlockedSpocAndSection(t *testing.T) {
	store := loadedSpocs("spoc-0", "spoc-1")
	store.Blocked = []string{"spoc-0"}

	secs := []content.Section{
		{SectionKey: "hidden", ReceivedRank: 0, Layout: layoutWithTiles(2, 2, 0)},
		{SectionKey: "shown", ReceivedRank: 1, Layout: layoutWithTiles(2, 2, 0)},
	}
	recs := []content.Item{rec("h1", "hidden"), rec("s1", "shown")}
	opts := Options{Personalization: map[string]content.SectionPreference{
		"hidden": {IsBlocked: true},
		"shown":  {IsFollowed: true},
	}}

	got := Assemble(secs, recs, store, opts)
	if len(got) != 1 || got[0].SectionKey != "shown" {
		t.Fatalf("sections = %+v, want only 'shown'", got)
	}
	if !got[0].IsFollowed {
		t.Error("followed section not marked")
	}
	// spoc-0 is blocked: its slot is consumed and the organic item stays.
	if diff := cmp.Diff([]string{"s1"}, dataURLs(got[0])); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleSpocsNotLoaded(t *testing.T) {
	store := loadedSpocs("spoc-0")
	store.Loaded = false
	secs := []content.Section{{SectionKey: "a", Layout: layoutWithTiles(2, 2, 0)}}
	got := Assemble(secs, []content.Item{rec("a1", "a")}, store, Options{})
	if diff := cmp.Diff([]string{"a1"}, dataURLs(got[0])); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}
