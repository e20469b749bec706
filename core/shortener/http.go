package shortener

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	shortenPath = "/ShortenURL"
	// maxBodySize bounds how much of a response is read; a short URL is tiny.
	maxBodySize = 4 << 10
)

// ResponseError is returned when the service answers with a non-success status.
type ResponseError struct {
	StatusCode int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("shortening service responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

type httpShortenerImpl struct {
	endpoint string
	client   *http.Client
}

// NewHTTP creates a Shortener calling the service at endpoint, e.g. http://localhost:8000.
// Requests go through client, nil meaning a default client, with its transport traced.
func NewHTTP(endpoint string, client *http.Client) Shortener {
	traced := http.Client{}
	if client != nil {
		traced = *client
	}
	base := traced.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	traced.Transport = otelhttp.NewTransport(base)

	return &httpShortenerImpl{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &traced,
	}
}

func (s *httpShortenerImpl) Shorten(ctx context.Context, longURL string) (string, error) {
	reqURL := fmt.Sprintf("%s%s?url=%s", s.endpoint, shortenPath, url.QueryEscape(longURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "fail to build shorten request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "fail to call shortening service")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return "", &ResponseError{StatusCode: resp.StatusCode}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", errors.Wrap(err, "fail to read shorten response")
	}

	shortURL := strings.TrimSpace(string(b))
	if shortURL == "" {
		return "", errors.New("shortening service returned an empty body")
	}
	zap.S().Debugf("shortened url: %s, short_url: %s", longURL, shortURL)

	return shortURL, nil
}
