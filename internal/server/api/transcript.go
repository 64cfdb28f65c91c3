package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/hlog"

	"playembed/internal/metrics"
	"playembed/internal/transcript"
)

// errorBody is the JSON error envelope returned by the proxy endpoints.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: errorDetail{Message: message}})
}

// TranscriptHandler proxies remote transcript files, converting whatever
// format the upstream serves into WebVTT.
type TranscriptHandler struct {
	client *http.Client
}

// NewTranscriptHandler creates a handler that fetches upstream transcripts
// with the given client.
func NewTranscriptHandler(client *http.Client) *TranscriptHandler {
	if client == nil {
		client = http.DefaultClient
	}
	return &TranscriptHandler{client: client}
}

// GetTranscript handles GET /api/proxy/transcript?u=<url>. Success responds
// 200 text/vtt; any upstream failure responds 400 with a reason string.
func (h *TranscriptHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	rawURL := r.URL.Query().Get("u")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "Bad URL Provided. Reason: missing 'u' parameter")
		return
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		log.Warn().Str("u", rawURL).Msg("Rejected transcript URL")
		writeError(w, http.StatusBadRequest, "Bad URL Provided. Reason: not an absolute http(s) URL")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, rawURL, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Bad URL Provided. Reason: %v", err))
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("u", rawURL).Msg("Transcript fetch failed")
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Bad URL Provided. Reason: %v", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("u", rawURL).Msg("Transcript upstream returned non-OK status")
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Bad URL Provided. Reason: upstream returned HTTP status %d", resp.StatusCode))
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Str("u", rawURL).Msg("Failed to read transcript body")
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Bad URL Provided. Reason: %v", err))
		return
	}

	format := transcript.Detect(resp.Header.Get("Content-Type"), string(body))
	vtt := transcript.ToVTT(format, string(body))
	metrics.TranscriptConversionsTotal.WithLabelValues(format.String()).Inc()

	w.Header().Set("Content-Type", "text/vtt")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(vtt)); err != nil {
		log.Error().Err(err).Msg("Error writing transcript response")
		return
	}

	log.Debug().
		Str("u", rawURL).
		Str("format", format.String()).
		Int("bytes", len(vtt)).
		Msg("Transcript converted")
}
