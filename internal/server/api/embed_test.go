package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"playembed/internal/embed"
	"playembed/internal/feed"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
	<channel>
		<title>Test Show</title>
		<link>https://example.com/show</link>
		<item>
			<title>Episode One</title>
			<link>https://example.com/1</link>
			<guid>ep1</guid>
			<enclosure url="https://example.com/1.mp3" length="1024" type="audio/mpeg"/>
		</item>
		<item>
			<title>Episode Two</title>
			<link>https://example.com/2</link>
			<guid>ep2</guid>
			<enclosure url="https://example.com/2.mp3" length="2048" type="audio/mpeg"/>
		</item>
	</channel>
</rss>`

func newEmbedHandler() *EmbedHandler {
	fetcher := feed.NewFetcher("playembed-test/1.0", 5*time.Second)
	return NewEmbedHandler(feed.NewService(fetcher, nil, time.Minute))
}

func doEmbedRequest(t *testing.T, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/embed?"+query.Encode(), nil)
	w := httptest.NewRecorder()
	newEmbedHandler().GetEmbed(w, req)
	return w
}

func TestGetEmbed(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testRSS))
	}))
	defer upstream.Close()

	query := url.Values{}
	query.Set("feed", upstream.URL)
	query.Set("guid", "ep2")

	w := doEmbedRequest(t, query)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var data embed.Data
	if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if data.Audio.GUID != "ep2" || data.Audio.URL != "https://example.com/2.mp3" {
		t.Errorf("Audio = %+v, want ep2", data.Audio)
	}
	if data.RSSTitle != "Test Show" {
		t.Errorf("RSSTitle = %q", data.RSSTitle)
	}
	if data.FollowURLs["rss"] != upstream.URL {
		t.Errorf("followUrls.rss = %q, want feed url", data.FollowURLs["rss"])
	}
}

func TestGetEmbedPlaylist(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testRSS))
	}))
	defer upstream.Close()

	query := url.Values{}
	query.Set("feed", upstream.URL)
	query.Set("playlist", "all")

	w := doEmbedRequest(t, query)

	var data embed.Data
	if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if len(data.Playlist) != 2 {
		t.Errorf("Playlist length = %d, want 2", len(data.Playlist))
	}
	if data.ShareURL != "https://example.com/show" {
		t.Errorf("ShareURL = %q, want feed link in playlist mode", data.ShareURL)
	}
}

func TestGetEmbedTitleOverride(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testRSS))
	}))
	defer upstream.Close()

	query := url.Values{}
	query.Set("feed", upstream.URL)
	query.Set("title", "X")

	w := doEmbedRequest(t, query)

	var data embed.Data
	if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if data.Audio.Title != "X" {
		t.Errorf("Audio.Title = %q, want config override", data.Audio.Title)
	}
}

func TestGetEmbedMissingFeedParam(t *testing.T) {
	w := doEmbedRequest(t, url.Values{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetEmbedUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer upstream.Close()

	query := url.Values{}
	query.Set("feed", upstream.URL)

	w := doEmbedRequest(t, query)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502 for feed fetch failure", w.Code)
	}

	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body not JSON: %v", err)
	}
}

func TestConfigFromQuery(t *testing.T) {
	query := url.Values{}
	query.Set("guid", "ep2")
	query.Set("playlist", "3")
	query.Set("season", "2")
	query.Set("category", "Tech")
	query.Set("subscribeUrl", "https://example.com/subscribe")

	cfg := configFromQuery(query)

	if cfg.EpisodeGUID != "ep2" {
		t.Errorf("EpisodeGUID = %q", cfg.EpisodeGUID)
	}
	if !cfg.ShowPlaylist.Enabled() || cfg.ShowPlaylist.Cap() != 3 {
		t.Errorf("ShowPlaylist = %+v", cfg.ShowPlaylist)
	}
	if cfg.PlaylistSeason == nil || *cfg.PlaylistSeason != 2 {
		t.Errorf("PlaylistSeason = %v", cfg.PlaylistSeason)
	}
	if cfg.PlaylistCategory != "Tech" {
		t.Errorf("PlaylistCategory = %q", cfg.PlaylistCategory)
	}
	if cfg.SubscribeURL != "https://example.com/subscribe" {
		t.Errorf("SubscribeURL = %q", cfg.SubscribeURL)
	}

	cfg = configFromQuery(url.Values{})
	if cfg.ShowPlaylist.Enabled() || cfg.PlaylistSeason != nil {
		t.Errorf("absent params must leave zero config: %+v", cfg)
	}
}
