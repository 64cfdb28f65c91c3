package transcript

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
)

const vttHeader = "WEBVTT"

// Segment is one time-coded entry of a JSON transcript document.
type Segment struct {
	Body      string  `json:"body"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

// jsonTranscript is the top-level shape of the podcast-namespace
// transcript JSON.
type jsonTranscript struct {
	Segments []Segment `json:"segments"`
}

// converters maps each detected format to its WebVTT conversion.
var converters = map[Format]func(string) string{
	FormatVTT:  passThrough,
	FormatSRT:  srtToVTT,
	FormatJSON: jsonToVTT,
}

// Convert detects the payload format and renders it as WebVTT. It never
// fails: empty or unrecognizable payloads become a bare WEBVTT header.
func Convert(contentType, body string) string {
	return ToVTT(Detect(contentType, body), body)
}

// ToVTT renders body as WebVTT according to the given source format.
func ToVTT(format Format, body string) string {
	if strings.TrimSpace(body) == "" {
		return vttHeader + "\n"
	}
	convert, ok := converters[format]
	if !ok {
		return passThrough(body)
	}
	return convert(body)
}

// passThrough returns an already-valid WebVTT payload unchanged.
func passThrough(body string) string {
	return body
}

// srtTimingLine matches an SRT cue timing line, tolerating a period in place
// of the standard comma separator.
var srtTimingLine = regexp.MustCompile(
	`^(\d{1,2}:\d{2}:\d{2})[,.](\d{1,3})\s*-->\s*(\d{1,2}:\d{2}:\d{2})[,.](\d{1,3})`)

// srtToVTT re-emits each SRT cue block as a WebVTT cue: index line dropped,
// comma timestamp separators normalized to periods, blank line between cues.
// Malformed blocks are skipped so one bad cue cannot ruin the whole
// conversion; the result of skipping everything is a bare header.
func srtToVTT(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	blocks := strings.Split(body, "\n\n")

	var cues []string
	for _, block := range blocks {
		cue, ok := srtCueToVTT(block)
		if !ok {
			continue
		}
		cues = append(cues, cue)
	}

	return renderVTT(cues)
}

func srtCueToVTT(block string) (string, bool) {
	lines := strings.Split(strings.TrimSpace(block), "\n")

	// Locate the timing line; an index line may or may not precede it.
	timingIdx := -1
	var timing []string
	for i, line := range lines {
		if m := srtTimingLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			timingIdx = i
			timing = m
			break
		}
	}
	if timingIdx == -1 || timingIdx == len(lines)-1 {
		return "", false
	}

	start := fmt.Sprintf("%s.%s", padHours(timing[1]), padMillis(timing[2]))
	end := fmt.Sprintf("%s.%s", padHours(timing[3]), padMillis(timing[4]))

	bodyLines := lines[timingIdx+1:]
	text := strings.TrimSpace(strings.Join(bodyLines, "\n"))
	if text == "" {
		return "", false
	}

	return fmt.Sprintf("%s --> %s\n%s", start, end, text), true
}

// padHours left-pads a single-digit hour field, since WebVTT requires
// two-digit hours while SRT tools often emit one.
func padHours(clock string) string {
	if len(clock) > 1 && clock[1] == ':' {
		return "0" + clock
	}
	return clock
}

// padMillis right-pads a millisecond field to three digits, so "5" becomes
// "500" per the SRT convention of fractional seconds.
func padMillis(ms string) string {
	for len(ms) < 3 {
		ms += "0"
	}
	return ms
}

// jsonToVTT renders a time-coded segment document as WebVTT cues. Segments
// are emitted in document order without re-sorting; an unordered input
// yields unordered-but-valid output. A document that does not parse yields
// the bare header.
func jsonToVTT(body string) string {
	var doc jsonTranscript
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return renderVTT(nil)
	}

	var cues []string
	for _, seg := range doc.Segments {
		cues = append(cues, fmt.Sprintf("%s --> %s\n%s",
			formatTimestamp(seg.StartTime),
			formatTimestamp(seg.EndTime),
			seg.Body))
	}

	return renderVTT(cues)
}

// renderVTT assembles the final document: header, then each cue separated
// by a blank line.
func renderVTT(cues []string) string {
	if len(cues) == 0 {
		return vttHeader + "\n"
	}
	return vttHeader + "\n\n" + strings.Join(cues, "\n\n") + "\n"
}

// formatTimestamp renders seconds as a WebVTT HH:MM:SS.mmm timestamp.
func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(math.Round(seconds * 1000))

	hours := totalMillis / 3600000
	minutes := (totalMillis % 3600000) / 60000
	secs := (totalMillis % 60000) / 1000
	millis := totalMillis % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}
