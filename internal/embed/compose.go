package embed

import (
	"playembed/internal/feed"
)

// Owner identifies the feed owner for display, from the itunes owner element.
type Owner struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Data is the canonical embed description consumed by the player. It merges
// feed defaults, the resolved episode, and caller overrides; any field whose
// every contributing source is absent is omitted from the JSON output.
type Data struct {
	BgImageURL string            `json:"bgImageUrl,omitempty"`
	Audio      AudioItem         `json:"audio"`
	Playlist   []AudioItem       `json:"playlist,omitempty"`
	RSSTitle   string            `json:"rssTitle,omitempty"`
	ShareURL   string            `json:"shareUrl,omitempty"`
	Owner      *Owner            `json:"owner,omitempty"`
	FollowURLs map[string]string `json:"followUrls,omitempty"`
}

// Compose builds the embed description for a feed and config. The merge is an
// ordered list of override layers applied lowest to highest: feed-level
// defaults, then the resolved audio item, then explicit config overrides.
// Compose never fails; missing data simply leaves fields absent.
func Compose(f *feed.Feed, cfg Config) Data {
	items := NormalizeItems(f)
	selection, playlistActive := ResolvePlaylist(items, f, cfg)

	var episode AudioItem
	if len(selection) > 0 {
		episode = selection[0]
	}
	if playlistActive && cfg.EpisodeGUID != "" {
		// An explicit episode wins over the first-playlist-item default.
		if match := selectEpisode(items, cfg.EpisodeGUID); match != nil && match.GUID == cfg.EpisodeGUID {
			episode = decorate([]AudioItem{*match}, f)[0]
		}
	}

	layers := []AudioItem{
		{
			Link:     f.Link,
			ImageURL: firstNonEmpty(f.ImageURL, f.ITunesImageURL),
		},
		episode,
		{
			Title:    cfg.Title,
			Subtitle: cfg.Subtitle,
			URL:      cfg.AudioURL,
			ImageURL: cfg.EpImageURL,
		},
	}
	audio := mergeAudio(layers[0], layers[1:]...)

	data := Data{
		Audio:    audio,
		RSSTitle: f.Title,
		BgImageURL: firstNonEmpty(
			cfg.ImageURL,
			f.ImageURL,
			f.ITunesImageURL,
			audio.ImageURL,
		),
	}

	if playlistActive {
		data.Playlist = selection
		data.ShareURL = f.Link
	} else {
		data.ShareURL = audio.Link
	}

	if f.Owner != nil {
		data.Owner = &Owner{Name: f.Owner.Name, Email: f.Owner.Email}
	}

	if rss := firstNonEmpty(cfg.SubscribeURL, cfg.FeedURL); rss != "" {
		data.FollowURLs = map[string]string{"rss": rss}
	}

	return data
}
