package spocs

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/contentstack/pkg/content"
)

func organic(urls ...string) []content.Item {
	items := make([]content.Item, len(urls))
	for i, u := range urls {
		items[i] = content.Item{ID: u, URL: u}
	}
	return items
}

func sponsored(urls ...string) []content.Item {
	items := make([]content.Item, len(urls))
	for i, u := range urls {
		items[i] = content.Item{ID: u, URL: u, FlightID: "flight-" + u}
	}
	return items
}

func urls(items []content.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.URL
	}
	return out
}

func TestFill(t *testing.T) {
	tests := []struct {
		name       string
		items      []content.Item
		positions  []content.Position
		pool       []content.Item
		blocked    content.BlockList
		want       []string
		wantCursor int
	}{
		{
			name:       "single position",
			items:      organic("a", "b", "c"),
			positions:  []content.Position{{Index: 1}},
			pool:       sponsored("s1", "s2"),
			want:       []string{"a", "s1", "b", "c"},
			wantCursor: 1,
		},
		{
			name:       "multiple positions in declared order",
			items:      organic("a", "b", "c"),
			positions:  []content.Position{{Index: 0}, {Index: 2}},
			pool:       sponsored("s1", "s2"),
			want:       []string{"s1", "a", "s2", "b", "c"},
			wantCursor: 2,
		},
		{
			name:       "pool exhausted stops filling",
			items:      organic("a", "b", "c"),
			positions:  []content.Position{{Index: 0}, {Index: 1}, {Index: 2}},
			pool:       sponsored("s1"),
			want:       []string{"s1", "a", "b", "c"},
			wantCursor: 1,
		},
		{
			name:       "blocked spoc is consumed and skipped",
			items:      organic("a", "b"),
			positions:  []content.Position{{Index: 0}, {Index: 1}},
			pool:       sponsored("s1", "s2"),
			blocked:    content.NewBlockList("s1"),
			want:       []string{"a", "s2", "b"},
			wantCursor: 2,
		},
		{
			name:       "index past end appends",
			items:      organic("a"),
			positions:  []content.Position{{Index: 10}},
			pool:       sponsored("s1"),
			want:       []string{"a", "s1"},
			wantCursor: 1,
		},
		{
			name:       "no positions",
			items:      organic("a"),
			positions:  nil,
			pool:       sponsored("s1"),
			want:       []string{"a"},
			wantCursor: 0,
		},
		{
			name:       "empty pool",
			items:      organic("a"),
			positions:  []content.Position{{Index: 0}},
			pool:       nil,
			want:       []string{"a"},
			wantCursor: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursors := NewCursors()
			got := Fill(tt.items, tt.positions, tt.pool, content.DefaultPlacement, cursors, tt.blocked)
			if diff := cmp.Diff(tt.want, urls(got)); diff != "" {
				t.Errorf("Fill() mismatch (-want +got):\n%s", diff)
			}
			if cursors[content.DefaultPlacement] != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", cursors[content.DefaultPlacement], tt.wantCursor)
			}
		})
	}
}

func TestFillBlockedOnlyPosition(t *testing.T) {
	items := organic("https://organic.test")
	pool := sponsored("https://x.test")
	blocked := content.NewBlockList("https://x.test")

	got := Fill(items, []content.Position{{Index: 0}}, pool, "newtab_spocs", NewCursors(), blocked)
	for _, it := range got {
		if it.URL == "https://x.test" {
			t.Fatalf("blocked spoc rendered: %v", urls(got))
		}
	}
	if len(got) != 1 || got[0].URL != "https://organic.test" {
		t.Errorf("Fill() = %v, want the organic item untouched", urls(got))
	}
}

func TestFillSharedCursorAcrossCalls(t *testing.T) {
	cursors := NewCursors()
	pool := sponsored("s1", "s2", "s3")

	first := Fill(organic("a", "b"), []content.Position{{Index: 1}}, pool, "p", cursors, nil)
	second := Fill(organic("a", "b"), []content.Position{{Index: 1}}, pool, "p", cursors, nil)

	if first[1].URL != "s1" || second[1].URL != "s2" {
		t.Errorf("spocs = %s, %s, want s1, s2", first[1].URL, second[1].URL)
	}

	// Other placements keep independent cursors.
	other := Fill(organic("a"), []content.Position{{Index: 0}}, pool, "q", cursors, nil)
	if other[0].URL != "s1" {
		t.Errorf("placement q started at %s, want s1", other[0].URL)
	}
}

func TestFillDoesNotMutateInputs(t *testing.T) {
	items := organic("a", "b")
	pool := sponsored("s1")
	Fill(items, []content.Position{{Index: 0}}, pool, "p", NewCursors(), nil)

	if diff := cmp.Diff([]string{"a", "b"}, urls(items)); diff != "" {
		t.Errorf("items mutated (-want +got):\n%s", diff)
	}
}

func TestContentPool(t *testing.T) {
	pool := []content.Item{
		{URL: "s1", Format: "spoc"},
		{URL: "b1", Format: content.FormatBillboard},
		{URL: "s2"},
		{URL: "l1", Format: content.FormatLeaderboard},
	}
	if diff := cmp.Diff([]string{"s1", "s2"}, urls(ContentPool(pool))); diff != "" {
		t.Errorf("ContentPool() mismatch (-want +got):\n%s", diff)
	}
}
