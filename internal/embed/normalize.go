package embed

import (
	"strings"

	"playembed/internal/feed"
)

// NormalizeItems builds the working item list for a feed, in original feed
// order. Each item's category list is the union, in first-seen order, of the
// channel-level itunes categories, the item's own categories, and the item's
// itunes categories, trimmed and deduplicated case-sensitively. Ordering and
// filtering of the list itself happen later in the playlist resolver.
func NormalizeItems(f *feed.Feed) []AudioItem {
	items := make([]AudioItem, 0, len(f.Items))
	for _, it := range f.Items {
		audio := ExtractAudioItem(it)
		audio.Categories = unionCategories(f.ITunesCategories, it.Categories, it.ITunesCategories)
		items = append(items, audio)
	}
	return items
}

// unionCategories merges category sources in order, trimming each entry and
// keeping only the first occurrence of a value.
func unionCategories(sources ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, src := range sources {
		for _, c := range src {
			c = strings.TrimSpace(c)
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
