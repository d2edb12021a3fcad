// Package metadata looks up movie details from the OMDb API.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jacksmith/moviedb/internal/model"
)

const (
	// omdbNotFound is the Error text OMDb returns when it has no such title.
	omdbNotFound = "Movie not found!"

	notAvailable = "N/A"
)

var yearRegex = regexp.MustCompile(`\d{4}`)

// OMDbClient implements ops.Provider over HTTP.
type OMDbClient struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

// NewOMDbClient constructs a client for the OMDb API rooted at baseURL.
func NewOMDbClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) (*OMDbClient, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse OMDb url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("parse OMDb url: %q is not an absolute URL", baseURL)
	}
	return &OMDbClient{
		baseURL: parsed,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// Lookup fetches metadata for title.
//
// A title OMDb does not know yields model.ErrMetadataNotFound; every other
// failure, including a response missing year or rating, is a
// *model.ProviderError.
func (c *OMDbClient) Lookup(ctx context.Context, title string) (*model.Metadata, error) {
	endpoint := *c.baseURL
	q := endpoint.Query()
	q.Set("apikey", c.apiKey)
	q.Set("t", title)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &model.ProviderError{Title: title, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("omdb.request_failed", "title", title, "error", redact(err, c.apiKey))
		return nil, &model.ProviderError{Title: title, Err: errors.New(redact(err, c.apiKey))}
	}
	defer resp.Body.Close()

	c.logger.Debug("omdb.response", "title", title, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode != http.StatusOK {
		return nil, &model.ProviderError{Title: title, Err: fmt.Errorf("upstream returned %d", resp.StatusCode)}
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &model.ProviderError{Title: title, Err: fmt.Errorf("decode response: %w", err)}
	}

	if payload.Response == "False" {
		if payload.Error == omdbNotFound {
			return nil, model.ErrMetadataNotFound
		}
		msg := payload.Error
		if msg == "" {
			msg = "request rejected"
		}
		return nil, &model.ProviderError{Title: title, Err: errors.New(msg)}
	}

	md, err := convertToMetadata(payload)
	if err != nil {
		return nil, &model.ProviderError{Title: title, Err: err}
	}
	return md, nil
}

type apiResponse struct {
	Title      *string `json:"Title"`
	Year       *string `json:"Year"`
	IMDBRating *string `json:"imdbRating"`
	Poster     *string `json:"Poster"`
	Response   string  `json:"Response"`
	Error      string  `json:"Error"`
}

func convertToMetadata(payload apiResponse) (*model.Metadata, error) {
	if payload.Title == nil || strings.TrimSpace(*payload.Title) == "" {
		return nil, errors.New("incomplete metadata: missing Title")
	}
	if payload.Year == nil {
		return nil, errors.New("incomplete metadata: missing Year")
	}
	if payload.IMDBRating == nil {
		return nil, errors.New("incomplete metadata: missing imdbRating")
	}

	year, err := parseYear(*payload.Year)
	if err != nil {
		return nil, err
	}
	rating, err := parseRating(*payload.IMDBRating)
	if err != nil {
		return nil, err
	}

	poster := ""
	if payload.Poster != nil {
		poster = *payload.Poster
	}

	return &model.Metadata{
		Title:  *payload.Title,
		Year:   year,
		Rating: rating,
		Poster: poster,
	}, nil
}

// parseYear takes the first 4-digit run, so ranges like "2010–2013" yield 2010.
func parseYear(s string) (int, error) {
	if s == notAvailable {
		return 0, errors.New("incomplete metadata: year not available")
	}
	match := yearRegex.FindString(s)
	if match == "" {
		return 0, fmt.Errorf("incomplete metadata: no valid year in %q", s)
	}
	return strconv.Atoi(match)
}

func parseRating(s string) (float64, error) {
	if s == notAvailable {
		return 0, errors.New("incomplete metadata: rating not available")
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("incomplete metadata: invalid rating %q", s)
	}
	if err := model.ValidateRating(r); err != nil {
		return 0, fmt.Errorf("incomplete metadata: %w", err)
	}
	return model.RoundRating(r), nil
}

// redact strips the API key from transport errors, which embed the full URL.
func redact(err error, apiKey string) string {
	return strings.ReplaceAll(err.Error(), apiKey, "REDACTED")
}
