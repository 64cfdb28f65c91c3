package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/hlog"

	"playembed/internal/embed"
	"playembed/internal/feed"
)

// EmbedHandler composes embed data for a feed plus query-string overrides.
type EmbedHandler struct {
	feeds *feed.Service
}

// NewEmbedHandler creates a handler backed by the given feed service.
func NewEmbedHandler(feeds *feed.Service) *EmbedHandler {
	return &EmbedHandler{feeds: feeds}
}

// GetEmbed handles GET /api/embed?feed=<url>&... and responds with the
// composed embed data as JSON. Feed fetch or parse failures respond 502
// with the offending URL; everything else degrades inside the composer.
func (h *EmbedHandler) GetEmbed(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	query := r.URL.Query()

	feedURL := query.Get("feed")
	if feedURL == "" {
		writeError(w, http.StatusBadRequest, "Missing required parameter: 'feed'")
		return
	}
	if parsed, err := url.Parse(feedURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		writeError(w, http.StatusBadRequest, "Invalid 'feed' parameter: not an absolute http(s) URL")
		return
	}

	cfg := configFromQuery(query)
	cfg.FeedURL = feedURL

	f, err := h.feeds.Resolve(r.Context(), feedURL)
	if err != nil {
		var fetchErr *feed.FetchError
		if errors.As(err, &fetchErr) {
			log.Warn().Err(err).Str("feed", fetchErr.URL).Msg("Feed resolution failed")
			writeError(w, http.StatusBadGateway, fetchErr.Error())
			return
		}
		log.Error().Err(err).Str("feed", feedURL).Msg("Unexpected feed resolution error")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	data := embed.Compose(f, cfg)

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Error marshaling embed data")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(jsonBytes); err != nil {
		log.Error().Err(err).Msg("Error writing embed response")
		return
	}

	log.Debug().
		Str("feed", feedURL).
		Int("playlist_items", len(data.Playlist)).
		Msg("Embed data composed")
}

// configFromQuery maps query parameters onto the embed configuration.
// Absent parameters leave fields zero so they never override feed data.
func configFromQuery(query url.Values) embed.Config {
	cfg := embed.Config{
		SubscribeURL:     query.Get("subscribeUrl"),
		ImageURL:         query.Get("imageUrl"),
		Title:            query.Get("title"),
		Subtitle:         query.Get("subtitle"),
		AudioURL:         query.Get("audioUrl"),
		EpImageURL:       query.Get("epImageUrl"),
		EpisodeGUID:      query.Get("guid"),
		ShowPlaylist:     embed.ParsePlaylistMode(query.Get("playlist")),
		PlaylistCategory: query.Get("category"),
	}

	if s := query.Get("season"); s != "" {
		if season, err := strconv.Atoi(s); err == nil {
			cfg.PlaylistSeason = &season
		}
	}

	return cfg
}
