package spocs

import (
	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/errors"
)

// AdType identifies a sponsored format for placement-count bookkeeping.
type AdType string

// Supported ad types.
const (
	AdTypeSpoc        AdType = "spoc"
	AdTypeBillboard   AdType = AdType(content.FormatBillboard)
	AdTypeLeaderboard AdType = AdType(content.FormatLeaderboard)
)

// ValidAdTypes is the set of supported ad types.
var ValidAdTypes = map[AdType]bool{
	AdTypeSpoc:        true,
	AdTypeBillboard:   true,
	AdTypeLeaderboard: true,
}

// ParseAdType validates s and returns it as an AdType.
// Unknown types return an UNSUPPORTED_AD_TYPE error.
func ParseAdType(s string) (AdType, error) {
	t := AdType(s)
	if !ValidAdTypes[t] {
		return "", errors.New(errors.ErrCodeUnsupportedAdType,
			"unsupported ad type: %q (must be one of: spoc, billboard, leaderboard)", s)
	}
	return t, nil
}

// IsBanner reports whether t is placed by absolute row.
func (t AdType) IsBanner() bool {
	return content.IsBannerFormat(string(t))
}

// PlacementCounts counts how many items of each ad type were placed in one
// resolution pass. Callers are expected to validate the ad type first; an
// unknown type is a programming error surfaced as UNSUPPORTED_AD_TYPE.
type PlacementCounts struct {
	counts map[AdType]int
}

// NewPlacementCounts returns zeroed counters.
func NewPlacementCounts() *PlacementCounts {
	return &PlacementCounts{counts: make(map[AdType]int)}
}

// Add records one placed item of type t.
func (p *PlacementCounts) Add(t AdType) error {
	if !ValidAdTypes[t] {
		return errors.New(errors.ErrCodeUnsupportedAdType, "unsupported ad type: %q", t)
	}
	p.counts[t]++
	return nil
}

// Count returns the number of placed items of type t.
func (p *PlacementCounts) Count(t AdType) (int, error) {
	if !ValidAdTypes[t] {
		return 0, errors.New(errors.ErrCodeUnsupportedAdType, "unsupported ad type: %q", t)
	}
	return p.counts[t], nil
}

// Total returns the number of placed items across all types.
func (p *PlacementCounts) Total() int {
	n := 0
	for _, c := range p.counts {
		n += c
	}
	return n
}
