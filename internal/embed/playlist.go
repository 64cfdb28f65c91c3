package embed

import (
	"strings"

	"playembed/internal/feed"
)

// filterStage is one named step of the playlist pipeline. Each stage is a
// pure function over the candidate list; a stage whose controlling config
// field is absent passes its input through untouched.
type filterStage struct {
	name  string
	apply func([]AudioItem) []AudioItem
}

func seasonStage(season *int) filterStage {
	return filterStage{
		name: "season",
		apply: func(items []AudioItem) []AudioItem {
			if season == nil {
				return items
			}
			var out []AudioItem
			for _, it := range items {
				if it.Season != nil && *it.Season == *season {
					out = append(out, it)
				}
			}
			return out
		},
	}
}

func categoryStage(category string) filterStage {
	return filterStage{
		name: "category",
		apply: func(items []AudioItem) []AudioItem {
			if category == "" {
				return items
			}
			var out []AudioItem
			for _, it := range items {
				for _, c := range it.Categories {
					if strings.EqualFold(c, category) {
						out = append(out, it)
						break
					}
				}
			}
			return out
		},
	}
}

func truncateStage(mode PlaylistMode) filterStage {
	return filterStage{
		name: "truncate",
		apply: func(items []AudioItem) []AudioItem {
			if mode.Unbounded() || mode.Cap() >= len(items) {
				return items
			}
			return items[:mode.Cap()]
		},
	}
}

// ResolvePlaylist selects the items to play. When playlist mode is enabled
// the season, category, and truncation stages run in fixed order over the
// normalized list. If playlist mode is off, or every item was filtered away,
// the result degrades to a single item: the one matching episodeGuid, or the
// first item of the list when no guid matches. The returned flag reports
// whether a playlist (rather than a single-item fallback) was produced.
func ResolvePlaylist(items []AudioItem, f *feed.Feed, cfg Config) ([]AudioItem, bool) {
	if cfg.ShowPlaylist.Enabled() {
		stages := []filterStage{
			seasonStage(cfg.PlaylistSeason),
			categoryStage(cfg.PlaylistCategory),
			truncateStage(cfg.ShowPlaylist),
		}

		selected := items
		for _, stage := range stages {
			selected = stage.apply(selected)
		}

		if len(selected) > 0 {
			return decorate(selected, f), true
		}
	}

	single := selectEpisode(items, cfg.EpisodeGUID)
	if single == nil {
		return nil, false
	}
	return decorate([]AudioItem{*single}, f), false
}

// selectEpisode picks the item whose guid matches, falling back to index 0.
// Selecting the first item on an unmatched guid is deliberate: an embed with
// a stale guid should still play something.
func selectEpisode(items []AudioItem, guid string) *AudioItem {
	if len(items) == 0 {
		return nil
	}
	if guid != "" {
		for i := range items {
			if items[i].GUID == guid {
				return &items[i]
			}
		}
	}
	return &items[0]
}

// decorate fills per-item gaps from channel-level data: a missing item image
// falls back to the feed image then the itunes image, and a missing link
// falls back to the feed link.
func decorate(items []AudioItem, f *feed.Feed) []AudioItem {
	out := make([]AudioItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ImageURL == "" {
			out[i].ImageURL = firstNonEmpty(f.ImageURL, f.ITunesImageURL)
		}
		if out[i].Link == "" {
			out[i].Link = f.Link
		}
	}
	return out
}
