package content

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestItemWithPos(t *testing.T) {
	orig := Item{ID: "a"}
	positioned := orig.WithPos(3)

	if _, ok := orig.Position(); ok {
		t.Error("WithPos should not modify the receiver")
	}
	if pos, ok := positioned.Position(); !ok || pos != 3 {
		t.Errorf("Position() = %d, %v, want 3, true", pos, ok)
	}

	again := positioned.WithPos(4)
	if pos, _ := positioned.Position(); pos != 3 {
		t.Errorf("re-positioning a copy changed the original to %d", pos)
	}
	if pos, _ := again.Position(); pos != 4 {
		t.Errorf("Position() = %d, want 4", pos)
	}
}

func TestPlaceholderItemJSON(t *testing.T) {
	data, err := json.Marshal(PlaceholderItem())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"placeholder":true}` {
		t.Errorf("placeholder JSON = %s", data)
	}
}

func TestIsBannerFormat(t *testing.T) {
	tests := map[string]bool{
		"billboard":   true,
		"leaderboard": true,
		"spoc":        false,
		"":            false,
		"rectangle":   false,
	}
	for format, want := range tests {
		if got := IsBannerFormat(format); got != want {
			t.Errorf("IsBannerFormat(%q) = %v, want %v", format, got, want)
		}
	}
}

func TestSectionLayout(t *testing.T) {
	l := SectionLayout{
		ResponsiveLayouts: []ResponsiveLayout{
			{ColumnCount: 4, Tiles: []Tile{{Position: 0}, {Position: 1}, {Position: 2, HasAd: true}, {Position: 3}, {Position: 4}}},
			{ColumnCount: 1, Tiles: []Tile{{Position: 0}, {Position: 1, HasAd: true}, {Position: 2, HasAd: true}}},
		},
	}

	if got := l.MaxTiles(); got != 5 {
		t.Errorf("MaxTiles() = %d, want 5", got)
	}

	want := []Position{{Index: 1}, {Index: 2}}
	if diff := cmp.Diff(want, l.AdPositions(1)); diff != "" {
		t.Errorf("AdPositions(1) mismatch (-want +got):\n%s", diff)
	}
	if got := l.AdPositions(2); got != nil {
		t.Errorf("AdPositions(2) = %v, want nil", got)
	}
	if got := (SectionLayout{}).MaxTiles(); got != 0 {
		t.Errorf("empty MaxTiles() = %d, want 0", got)
	}
}

func TestFeedsLookup(t *testing.T) {
	feeds := Feeds{Data: map[string]Feed{
		"https://feed.test/loaded":  {Loaded: true},
		"https://feed.test/pending": {Loaded: false},
	}}

	if _, ok := feeds.Lookup("https://feed.test/loaded"); !ok {
		t.Error("loaded feed should be found")
	}
	if _, ok := feeds.Lookup("https://feed.test/pending"); ok {
		t.Error("pending feed should not be found")
	}
	if _, ok := feeds.Lookup("https://feed.test/missing"); ok {
		t.Error("missing feed should not be found")
	}
}

func TestBlockList(t *testing.T) {
	var nilList BlockList
	if nilList.Has("https://x.test") {
		t.Error("nil BlockList should block nothing")
	}

	s := Spocs{Blocked: []string{"https://x.test"}}
	if !s.BlockList().Has("https://x.test") || !s.IsBlocked("https://x.test") {
		t.Error("blocked url not reported")
	}
	if s.IsBlocked("https://y.test") {
		t.Error("unexpected blocked url")
	}
}
