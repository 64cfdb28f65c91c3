package transcript

import (
	"regexp"
	"strings"
)

// Format is the detected source format of a transcript payload.
type Format int

const (
	// FormatVTT is native WebVTT, passed through unchanged.
	FormatVTT Format = iota
	// FormatSRT is SubRip, re-emitted as WebVTT cues.
	FormatSRT
	// FormatJSON is the podcast-namespace time-coded segment document.
	FormatJSON
)

// String returns the short name used in logs and metric labels.
func (f Format) String() string {
	switch f {
	case FormatSRT:
		return "srt"
	case FormatJSON:
		return "json"
	default:
		return "vtt"
	}
}

var (
	vttContentType  = regexp.MustCompile(`(application|text)/vtt`)
	srtContentType  = regexp.MustCompile(`(application|text)/srt`)
	jsonContentType = regexp.MustCompile(`(application|text)/json`)
)

// Detect classifies a transcript payload. The declared content type is
// consulted first; when it matches nothing, the body is sniffed. A payload
// matching no rule is treated as already-valid WebVTT, the safe default
// given the output contract is always WebVTT text.
func Detect(contentType, body string) Format {
	switch {
	case vttContentType.MatchString(contentType):
		return FormatVTT
	case srtContentType.MatchString(contentType):
		return FormatSRT
	case jsonContentType.MatchString(contentType):
		return FormatJSON
	}

	trimmed := strings.TrimSpace(body)
	switch {
	case strings.HasPrefix(trimmed, "WEBVTT"):
		return FormatVTT
	case strings.Contains(trimmed, "-->"):
		return FormatSRT
	case strings.HasPrefix(trimmed, "{"):
		return FormatJSON
	}

	return FormatVTT
}
