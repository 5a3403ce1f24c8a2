package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"image-quiz-service/internal/domain"
)

const maxPayloadBytes = 8 << 20

// HTTPLoader fetches a single question set (a data.json document) over HTTP.
// The set ID is ignored; the URL names the set.
type HTTPLoader struct {
	client *http.Client
	url    string
}

func NewHTTPLoader(url string, timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (l *HTTPLoader) LoadQuestionSet(ctx context.Context, _ string) ([]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	// Always read the current document, never an intermediary's copy.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrSourceUnavailable, l.url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrSourceUnavailable, err)
	}
	return DecodeRecords(data)
}
