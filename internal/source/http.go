package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
)

// maxBodyBytes bounds how much of a remote question list is read.
const maxBodyBytes = 8 << 20

// HTTPSource fetches questions from a URL. It is read-only.
type HTTPSource struct {
	url    string
	client *http.Client // reused across calls
}

var _ Source = (*HTTPSource)(nil)

// NewHTTP creates a source for rawURL. A nil client gets a 30 second timeout.
func NewHTTP(rawURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSource{url: rawURL, client: client}
}

func (h *HTTPSource) Location() string { return h.url }

func (h *HTTPSource) Load(ctx context.Context) ([]questionbank.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, &SourceError{Location: h.url, Wrapped: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Accept", "application/json, application/yaml")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &SourceError{Location: h.url, Wrapped: errors.Wrap(err, "request failed")}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SourceError{Location: h.url, Wrapped: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &SourceError{Location: h.url, Wrapped: errors.Wrap(err, "read body")}
	}

	questions, err := decode(h.formatOf(resp), data)
	if err != nil {
		return nil, &SourceError{Location: h.url, Wrapped: err}
	}
	return questions, nil
}

func (h *HTTPSource) formatOf(resp *http.Response) Format {
	if strings.Contains(resp.Header.Get("Content-Type"), "yaml") {
		return FormatYAML
	}
	if u, err := url.Parse(h.url); err == nil {
		return FormatOf(u.Path)
	}
	return FormatJSON
}
