package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/outfit-concierge/internal/infra/config"
)

// Bodies above this size are not buffered for replay.
const replayBodyLimit = 1 << 20

var errReplayBodyTooLarge = errors.New("request body exceeds replay limit")

// withRetry replays POST requests whose first attempts end in a 5xx. Responses
// are buffered so only the final attempt reaches the client. Paths listed in
// cfg.Exclude (non-idempotent batch ingestion) bypass the wrapper.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	excluded := make(map[string]struct{}, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		excluded[path] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := excluded[r.URL.Path]; skip || r.Method != http.MethodPost {
			handler.ServeHTTP(w, r)
			return
		}

		body, err := bufferBody(r)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, errReplayBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, err.Error(), status)
			return
		}

		for attempt := 1; ; attempt++ {
			replay := r.Clone(r.Context())
			replay.Body = io.NopCloser(bytes.NewReader(body))
			replay.ContentLength = int64(len(body))

			buffered := newBufferedResponse(w)
			handler.ServeHTTP(buffered, replay)

			if buffered.status < http.StatusInternalServerError || attempt == cfg.MaxAttempts {
				buffered.flushTo()
				return
			}

			logger.Warn("transient failure, retrying request",
				"path", r.URL.Path, "status", buffered.status, "attempt", attempt)
			if delay := cfg.BaseBackoff * time.Duration(1<<(attempt-1)); delay > 0 {
				time.Sleep(delay)
			}
		}
	})
}

func bufferBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, replayBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > replayBodyLimit {
		return nil, errReplayBodyTooLarge
	}
	return data, nil
}

// bufferedResponse holds one attempt's response until it is known to be final.
type bufferedResponse struct {
	dst       http.ResponseWriter
	header    http.Header
	body      bytes.Buffer
	status    int
	headerSet bool
}

func newBufferedResponse(dst http.ResponseWriter) *bufferedResponse {
	return &bufferedResponse{dst: dst, header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.headerSet {
		return
	}
	b.status = status
	b.headerSet = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	return b.body.Write(p)
}

func (b *bufferedResponse) Flush() {}

func (b *bufferedResponse) flushTo() {
	dst := b.dst.Header()
	for key := range dst {
		dst.Del(key)
	}
	for key, values := range b.header {
		dst[key] = append([]string(nil), values...)
	}
	b.dst.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = b.dst.Write(b.body.Bytes())
	}
}
