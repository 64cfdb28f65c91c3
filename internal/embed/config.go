package embed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PlaylistMode controls whether a playlist is exposed and how many items it
// may hold. The three states mirror the accepted config values: disabled
// (false or absent), unbounded (true or "all"), and a positive integer cap.
type PlaylistMode struct {
	enabled bool
	all     bool
	cap     int
}

// PlaylistDisabled is the zero mode: no playlist.
var PlaylistDisabled = PlaylistMode{}

// PlaylistAll exposes every item that survives filtering.
func PlaylistAll() PlaylistMode {
	return PlaylistMode{enabled: true, all: true}
}

// PlaylistCap exposes at most n items. Non-positive n disables the playlist.
func PlaylistCap(n int) PlaylistMode {
	if n <= 0 {
		return PlaylistDisabled
	}
	return PlaylistMode{enabled: true, cap: n}
}

// Enabled reports whether playlist mode is requested at all.
func (m PlaylistMode) Enabled() bool {
	return m.enabled
}

// Unbounded reports whether every filtered item should be kept.
func (m PlaylistMode) Unbounded() bool {
	return m.all
}

// Cap returns the item cap; meaningful only when Enabled and not Unbounded.
func (m PlaylistMode) Cap() int {
	return m.cap
}

// ParsePlaylistMode interprets a query-string value: "" / "false" / "0"
// disable the playlist, "true" / "all" keep everything, and a positive
// integer caps the item count. Anything unrecognized disables the playlist.
func ParsePlaylistMode(s string) PlaylistMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "0":
		return PlaylistDisabled
	case "true", "all":
		return PlaylistAll()
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return PlaylistCap(n)
	}
	return PlaylistDisabled
}

// UnmarshalJSON accepts boolean, "all", or a positive integer cap.
func (m *PlaylistMode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*m = PlaylistDisabled
		return nil
	}

	switch data[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		if b {
			*m = PlaylistAll()
		} else {
			*m = PlaylistDisabled
		}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = ParsePlaylistMode(s)
		return nil
	default:
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid showPlaylist value %s", data)
		}
		*m = PlaylistCap(n)
		return nil
	}
}

// MarshalJSON emits false, "all", or the integer cap.
func (m PlaylistMode) MarshalJSON() ([]byte, error) {
	switch {
	case !m.enabled:
		return json.Marshal(false)
	case m.all:
		return json.Marshal("all")
	default:
		return json.Marshal(m.cap)
	}
}

// Config is the caller-supplied embed configuration. Every field is optional;
// zero values mean "absent" and never override feed-derived data.
type Config struct {
	FeedURL      string       `json:"feedUrl,omitempty"`
	SubscribeURL string       `json:"subscribeUrl,omitempty"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	Title        string       `json:"title,omitempty"`
	Subtitle     string       `json:"subtitle,omitempty"`
	AudioURL     string       `json:"audioUrl,omitempty"`
	EpImageURL   string       `json:"epImageUrl,omitempty"`
	EpisodeGUID  string       `json:"episodeGuid,omitempty"`
	ShowPlaylist PlaylistMode `json:"showPlaylist"`

	PlaylistSeason   *int   `json:"playlistSeason,omitempty"`
	PlaylistCategory string `json:"playlistCategory,omitempty"`
}
