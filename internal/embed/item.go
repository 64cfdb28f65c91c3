package embed

import (
	"strconv"
	"strings"

	"playembed/internal/feed"
)

// AudioItem is the normalized playable record for one episode. Optional
// fields are omitted from JSON entirely when their source data is absent;
// nothing is ever emitted as null.
type AudioItem struct {
	GUID       string   `json:"guid,omitempty"`
	Link       string   `json:"link,omitempty"`
	Title      string   `json:"title,omitempty"`
	URL        string   `json:"url,omitempty"`
	Subtitle   string   `json:"subtitle,omitempty"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	Duration   string   `json:"duration,omitempty"`
	Season     *int     `json:"season,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// ExtractAudioItem maps one raw feed item to an AudioItem. It is total:
// the only soft failure is a non-numeric season string, which drops the
// field rather than erroring.
func ExtractAudioItem(it feed.Item) AudioItem {
	out := AudioItem{
		GUID:     it.GUID,
		Link:     it.Link,
		Title:    it.Title,
		URL:      it.EnclosureURL,
		Subtitle: it.Subtitle,
		ImageURL: it.ImageURL,
		Duration: it.Duration,
	}

	if it.Season != "" {
		if season, err := strconv.Atoi(strings.TrimSpace(it.Season)); err == nil {
			out.Season = &season
		}
	}

	if len(it.Categories) > 0 {
		out.Categories = trimCategories(it.Categories)
	}

	return out
}

func trimCategories(cats []string) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, strings.TrimSpace(c))
	}
	return out
}

// mergeAudio overlays each non-absent field of the overlays, in order, onto
// base. Later layers win; absent (zero) fields never erase earlier values.
func mergeAudio(base AudioItem, overlays ...AudioItem) AudioItem {
	out := base
	for _, o := range overlays {
		if o.GUID != "" {
			out.GUID = o.GUID
		}
		if o.Link != "" {
			out.Link = o.Link
		}
		if o.Title != "" {
			out.Title = o.Title
		}
		if o.URL != "" {
			out.URL = o.URL
		}
		if o.Subtitle != "" {
			out.Subtitle = o.Subtitle
		}
		if o.ImageURL != "" {
			out.ImageURL = o.ImageURL
		}
		if o.Duration != "" {
			out.Duration = o.Duration
		}
		if o.Season != nil {
			out.Season = o.Season
		}
		if len(o.Categories) > 0 {
			out.Categories = o.Categories
		}
	}
	return out
}

// firstNonEmpty returns the first non-empty string, or "".
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
