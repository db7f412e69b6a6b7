package layout

import (
	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/errors"
	"github.com/matzehuels/contentstack/pkg/spocs"
)

// Stats summarizes a render tree.
type Stats struct {
	Rows            int `json:"rows"`
	Components      int `json:"components"`
	Placeholders    int `json:"placeholders"`
	Recommendations int `json:"recommendations"`
	Sections        int `json:"sections"`
	Spocs           int `json:"spocs"`
	Billboards      int `json:"billboards"`
	Leaderboards    int `json:"leaderboards"`
}

// Stats walks the tree and counts what it holds. Placeholder components
// contribute to Placeholders only. In sections mode a component carries its
// organic items twice, flat and grouped; they are counted once, from the
// sections. A banner of an unknown format fails with UNSUPPORTED_AD_TYPE.
func (t RenderTree) Stats() (Stats, error) {
	st := Stats{Rows: len(t.Rows)}
	counts := spocs.NewPlacementCounts()

	countItems := func(items []content.Item) error {
		for _, it := range items {
			if !it.IsSponsored() {
				st.Recommendations++
				continue
			}
			if err := counts.Add(spocs.AdTypeSpoc); err != nil {
				return err
			}
		}
		return nil
	}

	for _, rc := range t.Components() {
		st.Components++
		if rc.Placeholder {
			st.Placeholders++
			continue
		}
		if rc.Data == nil {
			continue
		}
		if len(rc.Data.Sections) == 0 {
			if err := countItems(rc.Data.Recommendations); err != nil {
				return Stats{}, err
			}
		}
		for _, sec := range rc.Data.Sections {
			st.Sections++
			if err := countItems(sec.Data); err != nil {
				return Stats{}, err
			}
		}
		if err := countItems(rc.Data.Spocs); err != nil {
			return Stats{}, err
		}
		for _, b := range rc.Data.Banners {
			typ, err := spocs.ParseAdType(b.Format)
			if err != nil {
				return Stats{}, err
			}
			if !typ.IsBanner() {
				return Stats{}, errors.New(errors.ErrCodeUnsupportedAdType,
					"banner at row %d has non-banner format %q", b.Row, b.Format)
			}
			if err := counts.Add(typ); err != nil {
				return Stats{}, err
			}
		}
	}

	st.Spocs, _ = counts.Count(spocs.AdTypeSpoc)
	st.Billboards, _ = counts.Count(spocs.AdTypeBillboard)
	st.Leaderboards, _ = counts.Count(spocs.AdTypeLeaderboard)
	return st, nil
}
