package layout

import (
	"testing"

	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty", nil, false},
		{"valid", Config{{Width: 12, Components: []Component{cardGrid(4, 0, 3), {Type: TypeTopSites}}}}, false},
		{"negative width", Config{{Width: -1}}, true},
		{"missing type", Config{{Components: []Component{{}}}}, true},
		{"bad feed url", Config{{Components: []Component{{Type: TypeCardGrid, Feed: &FeedRef{URL: "ftp://x"}}}}}, true},
		{"bad placement", Config{{Components: []Component{{
			Type:  TypeCardGrid,
			Spocs: &SpocsConfig{Placement: &content.Placement{Name: "a:b"}},
		}}}}, true},
		{"negative position", Config{{Components: []Component{cardGrid(2, -1)}}}, true},
		{"negative items", Config{{Components: []Component{cardGrid(-2)}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidLayout)
			}
		})
	}
}

func TestPlacementName(t *testing.T) {
	tests := []struct {
		name string
		comp Component
		want string
	}{
		{"default", Component{}, content.DefaultPlacement},
		{"component", Component{Placement: &content.Placement{Name: "sidebar"}}, "sidebar"},
		{"spocs wins", Component{
			Placement: &content.Placement{Name: "sidebar"},
			Spocs:     &SpocsConfig{Placement: &content.Placement{Name: "hero"}},
		}, "hero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.comp.PlacementName(); got != tt.want {
				t.Errorf("PlacementName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPropertiesNumericKinds(t *testing.T) {
	for _, v := range []any{4, int64(4), float64(4), uint64(4)} {
		if got := (Properties{PropItems: v}).Items(); got != 4 {
			t.Errorf("Items() with %T = %d, want 4", v, got)
		}
	}
	if got := (Properties{PropItems: "4"}).Items(); got != 0 {
		t.Errorf("Items() with string = %d, want 0", got)
	}
}
