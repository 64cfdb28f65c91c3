package embed

import (
	"encoding/json"
	"strings"
	"testing"

	"playembed/internal/feed"
)

func testFeed() *feed.Feed {
	return &feed.Feed{
		Title:          "Test Show",
		Link:           "https://example.com/show",
		ImageURL:       "https://example.com/cover.jpg",
		ITunesImageURL: "https://example.com/itunes.jpg",
		Owner:          &feed.Owner{Name: "Pat", Email: "pat@example.com"},
		Items: []feed.Item{
			{GUID: "ep1", Title: "One", Link: "https://example.com/1", EnclosureURL: "https://example.com/1.mp3"},
			{GUID: "ep2", Title: "Two", Link: "https://example.com/2", EnclosureURL: "https://example.com/2.mp3"},
			{GUID: "ep3", Title: "Three", Link: "https://example.com/3", EnclosureURL: "https://example.com/3.mp3"},
		},
	}
}

func TestComposeConfigTitleWins(t *testing.T) {
	data := Compose(testFeed(), Config{Title: "X"})

	if data.Audio.Title != "X" {
		t.Errorf("Audio.Title = %q, want config override to win", data.Audio.Title)
	}
}

func TestComposeFeedTitleWhenNoOverride(t *testing.T) {
	data := Compose(testFeed(), Config{EpisodeGUID: "ep2"})

	if data.Audio.Title != "Two" {
		t.Errorf("Audio.Title = %q, want episode title", data.Audio.Title)
	}
	if data.RSSTitle != "Test Show" {
		t.Errorf("RSSTitle = %q, want feed title", data.RSSTitle)
	}
}

func TestComposeConfigOverrides(t *testing.T) {
	cfg := Config{
		EpisodeGUID: "ep1",
		Subtitle:    "custom subtitle",
		AudioURL:    "https://cdn.example.com/custom.mp3",
		EpImageURL:  "https://cdn.example.com/custom.jpg",
	}

	data := Compose(testFeed(), cfg)

	if data.Audio.Subtitle != "custom subtitle" {
		t.Errorf("Subtitle = %q", data.Audio.Subtitle)
	}
	if data.Audio.URL != "https://cdn.example.com/custom.mp3" {
		t.Errorf("URL = %q, want audioUrl override", data.Audio.URL)
	}
	if data.Audio.ImageURL != "https://cdn.example.com/custom.jpg" {
		t.Errorf("ImageURL = %q, want epImageUrl override", data.Audio.ImageURL)
	}
}

func TestComposeBgImagePrecedence(t *testing.T) {
	f := testFeed()

	data := Compose(f, Config{ImageURL: "https://cdn.example.com/bg.jpg"})
	if data.BgImageURL != "https://cdn.example.com/bg.jpg" {
		t.Errorf("BgImageURL = %q, want configured image first", data.BgImageURL)
	}

	data = Compose(f, Config{})
	if data.BgImageURL != "https://example.com/cover.jpg" {
		t.Errorf("BgImageURL = %q, want feed image second", data.BgImageURL)
	}

	f.ImageURL = ""
	data = Compose(f, Config{})
	if data.BgImageURL != "https://example.com/itunes.jpg" {
		t.Errorf("BgImageURL = %q, want itunes image third", data.BgImageURL)
	}
}

func TestComposeShareURL(t *testing.T) {
	data := Compose(testFeed(), Config{EpisodeGUID: "ep2"})
	if data.ShareURL != "https://example.com/2" {
		t.Errorf("ShareURL = %q, want episode link in single mode", data.ShareURL)
	}

	data = Compose(testFeed(), Config{ShowPlaylist: PlaylistAll()})
	if data.ShareURL != "https://example.com/show" {
		t.Errorf("ShareURL = %q, want feed link in playlist mode", data.ShareURL)
	}
}

func TestComposeGuidWinsOverFirstPlaylistItem(t *testing.T) {
	data := Compose(testFeed(), Config{ShowPlaylist: PlaylistAll(), EpisodeGUID: "ep3"})

	if data.Audio.GUID != "ep3" {
		t.Errorf("Audio.GUID = %q, want episodeGuid to beat the first playlist item", data.Audio.GUID)
	}
	if len(data.Playlist) != 3 {
		t.Errorf("Playlist length = %d, want full playlist retained", len(data.Playlist))
	}
}

func TestComposeFollowURLs(t *testing.T) {
	data := Compose(testFeed(), Config{FeedURL: "https://example.com/rss"})
	if data.FollowURLs["rss"] != "https://example.com/rss" {
		t.Errorf("followUrls.rss = %q, want feedUrl", data.FollowURLs["rss"])
	}

	data = Compose(testFeed(), Config{
		FeedURL:      "https://example.com/rss",
		SubscribeURL: "https://example.com/subscribe",
	})
	if data.FollowURLs["rss"] != "https://example.com/subscribe" {
		t.Errorf("followUrls.rss = %q, want subscribeUrl to win", data.FollowURLs["rss"])
	}

	data = Compose(testFeed(), Config{})
	if data.FollowURLs != nil {
		t.Errorf("FollowURLs = %v, want absent when no source", data.FollowURLs)
	}
}

func TestComposePlaylistOnlyWhenActive(t *testing.T) {
	data := Compose(testFeed(), Config{})
	if data.Playlist != nil {
		t.Errorf("Playlist = %v, want absent when showPlaylist disabled", data.Playlist)
	}

	data = Compose(testFeed(), Config{ShowPlaylist: PlaylistCap(2)})
	if len(data.Playlist) != 2 {
		t.Errorf("Playlist length = %d, want 2", len(data.Playlist))
	}
}

func TestComposeEmptyFeed(t *testing.T) {
	data := Compose(&feed.Feed{}, Config{})

	if data.Audio.GUID != "" || data.Playlist != nil {
		t.Errorf("empty feed should compose to empty audio: %+v", data)
	}
}

// No optional field may ever serialize as null; absence means omission.
func TestComposeJSONOmitsAbsentFields(t *testing.T) {
	data := Compose(&feed.Feed{Items: []feed.Item{{GUID: "ep1"}}}, Config{})

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := string(raw)
	if strings.Contains(out, "null") {
		t.Errorf("JSON contains null: %s", out)
	}
	for _, field := range []string{"bgImageUrl", "playlist", "owner", "followUrls", "shareUrl", "rssTitle"} {
		if strings.Contains(out, field) {
			t.Errorf("JSON contains %q despite absent source: %s", field, out)
		}
	}
}

func TestComposeOwner(t *testing.T) {
	data := Compose(testFeed(), Config{})

	if data.Owner == nil || data.Owner.Name != "Pat" || data.Owner.Email != "pat@example.com" {
		t.Errorf("Owner = %+v, want itunes owner", data.Owner)
	}
}
