package state

import (
	"maps"
	"slices"

	"github.com/matzehuels/contentstack/pkg/content"
)

// Reduce applies ev to prev and returns the next state. The bool reports
// whether the event was applied; gated events arriving before [IsReady] holds
// and unknown events are dropped and prev is returned unchanged.
//
// Reduce never modifies prev.
func Reduce(prev State, ev Event) (State, bool) {
	if Gated(ev) && !IsReady(prev) {
		return prev, false
	}

	next := prev
	switch e := ev.(type) {
	case ConfigChange:
		next.Config = e.Config
	case LayoutUpdate:
		next.Layout = e.Layout
		next.LayoutLastUpdated = e.LastUpdated
	case LayoutReset:
		next.Layout = nil
		next.LayoutLastUpdated = 0
	case PrefsUpdate:
		next.Prefs = e.Prefs
	case SectionPersonalizationUpdate:
		next.SectionPersonalization = maps.Clone(e.Sections)

	case FeedsUpdate:
		next.Feeds.Loaded = true
		if next.Feeds.Data == nil {
			next.Feeds.Data = map[string]content.Feed{}
		}
	case FeedUpdate:
		next.Feeds.Data = maps.Clone(prev.Feeds.Data)
		if next.Feeds.Data == nil {
			next.Feeds.Data = map[string]content.Feed{}
		}
		next.Feeds.Data[e.URL] = e.Feed

	case SpocsEndpoint:
		next.Spocs = InitialSpocs()
		next.Spocs.Endpoint = e.URL
	case SpocsPlacements:
		next.Spocs = InitialSpocs()
		next.Spocs.Placements = slices.Clone(e.Placements)
	case SpocsUpdate:
		next.Spocs.Data = maps.Clone(e.Data)
		next.Spocs.LastUpdated = e.LastUpdated
		next.Spocs.Loaded = true
	case SpocsCaps:
		next.Spocs.FrequencyCaps = slices.Clone(e.Caps)
	case SpocBlocked:
		next.Spocs.Blocked = appendBlocked(prev.Spocs.Blocked, e.URL)

	case LinkBlocked:
		next = mapItems(prev, func(it content.Item) (content.Item, bool) {
			return it, it.URL != e.URL
		})
		next.Spocs.Blocked = appendBlocked(prev.Spocs.Blocked, e.URL)
	case BookmarkAdded:
		next = mapItems(prev, func(it content.Item) (content.Item, bool) {
			if it.URL == e.URL {
				it.BookmarkGUID = e.GUID
				it.BookmarkTitle = e.Title
				it.BookmarkDateCreated = e.DateCreated
			}
			return it, true
		})
	case BookmarksRemoved:
		next = mapItems(prev, func(it content.Item) (content.Item, bool) {
			if slices.Contains(e.URLs, it.URL) {
				it.BookmarkGUID = ""
				it.BookmarkTitle = ""
				it.BookmarkDateCreated = 0
			}
			return it, true
		})
	case SavedToPocket:
		next = mapItems(prev, func(it content.Item) (content.Item, bool) {
			if it.URL == e.URL {
				it.PocketID = e.PocketID
				it.OpenURL = e.OpenURL
			}
			return it, true
		})
	case DeletedFromPocket:
		next = removePocketItems(prev, e.PocketID)
	case ArchivedFromPocket:
		next = removePocketItems(prev, e.PocketID)

	default:
		return prev, false
	}
	return next, true
}

func appendBlocked(blocked []string, url string) []string {
	if slices.Contains(blocked, url) {
		return blocked
	}
	return append(slices.Clip(blocked), url)
}

func removePocketItems(s State, pocketID string) State {
	return mapItems(s, func(it content.Item) (content.Item, bool) {
		return it, pocketID == "" || it.PocketID != pocketID
	})
}

// mapItems applies f to every item held by s: each feed's recommendations
// and section data, and each spoc placement's items. Items for which f
// returns false are dropped. The result shares nothing mutable with s.
func mapItems(s State, f func(content.Item) (content.Item, bool)) State {
	next := s

	if s.Feeds.Data != nil {
		next.Feeds.Data = make(map[string]content.Feed, len(s.Feeds.Data))
		for url, feed := range s.Feeds.Data {
			feed.Data.Recommendations = mapSlice(feed.Data.Recommendations, f)
			if feed.Data.Sections != nil {
				secs := make([]content.Section, len(feed.Data.Sections))
				for i, sec := range feed.Data.Sections {
					sec.Data = mapSlice(sec.Data, f)
					secs[i] = sec
				}
				feed.Data.Sections = secs
			}
			next.Feeds.Data[url] = feed
		}
	}

	if s.Spocs.Data != nil {
		next.Spocs.Data = make(map[string]content.PlacementData, len(s.Spocs.Data))
		for name, pd := range s.Spocs.Data {
			pd.Items = mapSlice(pd.Items, f)
			next.Spocs.Data[name] = pd
		}
	}
	return next
}

func mapSlice(items []content.Item, f func(content.Item) (content.Item, bool)) []content.Item {
	if items == nil {
		return nil
	}
	out := make([]content.Item, 0, len(items))
	for _, it := range items {
		if v, keep := f(it); keep {
			out = append(out, v)
		}
	}
	return out
}
