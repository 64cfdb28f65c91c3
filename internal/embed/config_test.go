package embed

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParsePlaylistMode(t *testing.T) {
	tests := []struct {
		in        string
		enabled   bool
		unbounded bool
		cap       int
	}{
		{"", false, false, 0},
		{"false", false, false, 0},
		{"0", false, false, 0},
		{"true", true, true, 0},
		{"all", true, true, 0},
		{"ALL", true, true, 0},
		{"5", true, false, 5},
		{" 3 ", true, false, 3},
		{"-2", false, false, 0},
		{"garbage", false, false, 0},
	}

	for _, tt := range tests {
		got := ParsePlaylistMode(tt.in)
		if got.Enabled() != tt.enabled || got.Unbounded() != tt.unbounded || got.Cap() != tt.cap {
			t.Errorf("ParsePlaylistMode(%q) = {enabled:%v all:%v cap:%d}, want {%v %v %d}",
				tt.in, got.Enabled(), got.Unbounded(), got.Cap(), tt.enabled, tt.unbounded, tt.cap)
		}
	}
}

func TestPlaylistModeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		in        string
		enabled   bool
		unbounded bool
		cap       int
	}{
		{`false`, false, false, 0},
		{`true`, true, true, 0},
		{`"all"`, true, true, 0},
		{`4`, true, false, 4},
		{`null`, false, false, 0},
	}

	for _, tt := range tests {
		var m PlaylistMode
		if err := json.Unmarshal([]byte(tt.in), &m); err != nil {
			t.Errorf("Unmarshal(%s): %v", tt.in, err)
			continue
		}
		if m.Enabled() != tt.enabled || m.Unbounded() != tt.unbounded || m.Cap() != tt.cap {
			t.Errorf("Unmarshal(%s) = {enabled:%v all:%v cap:%d}, want {%v %v %d}",
				tt.in, m.Enabled(), m.Unbounded(), m.Cap(), tt.enabled, tt.unbounded, tt.cap)
		}
	}
}

func TestPlaylistModeMarshalRoundTrip(t *testing.T) {
	for _, mode := range []PlaylistMode{PlaylistDisabled, PlaylistAll(), PlaylistCap(3)} {
		raw, err := json.Marshal(mode)
		if err != nil {
			t.Fatalf("marshal %+v: %v", mode, err)
		}
		var back PlaylistMode
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if back != mode {
			t.Errorf("round trip %s = %+v, want %+v", raw, back, mode)
		}
	}
}

func TestConfigMarshalShowPlaylist(t *testing.T) {
	raw, err := json.Marshal(Config{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"showPlaylist":false`) {
		t.Errorf("zero config must emit an explicit showPlaylist: %s", raw)
	}

	raw, err = json.Marshal(Config{ShowPlaylist: PlaylistCap(3)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"showPlaylist":3`) {
		t.Errorf("capped config must emit the cap: %s", raw)
	}
}
