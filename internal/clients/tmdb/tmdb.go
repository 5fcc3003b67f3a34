package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnavailable covers every upstream failure mode: transport errors,
// timeouts, non-200 statuses and undecodable bodies. Callers only need to
// know the enrichment could not be served.
var ErrUnavailable = errors.New("tmdb: upstream unavailable")

// MovieInfo carries the descriptive fields consumed from the metadata API.
type MovieInfo struct {
	Title       string
	Genre       *string
	Description *string
}

type Provider interface {
	GetMovie(ctx context.Context, tmdbID int64) (*MovieInfo, error)
}

type Client struct {
	log     *slog.Logger
	baseURL string
	apiKey  string
	client  *http.Client
}

func New(log *slog.Logger, baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetMovie fetches title, first genre name and overview for a movie id.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*MovieInfo, error) {
	const op = "tmdb.Client.GetMovie"
	log := c.log.With("op", op, "tmdb_id", tmdbID)

	endpoint := fmt.Sprintf(
		"%s/movie/%d?api_key=%s&language=en-US",
		c.baseURL,
		tmdbID,
		url.QueryEscape(c.apiKey),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error("request failed", "errMsg", err.Error())
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("unexpected upstream status", "status", resp.StatusCode)
		return nil, ErrUnavailable
	}

	var payload movieResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Error("decoding response body", "errMsg", err.Error())
		return nil, ErrUnavailable
	}
	return payload.toInfo(), nil
}

type movieResponse struct {
	Title  string `json:"title"`
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Overview string `json:"overview"`
}

func (r movieResponse) toInfo() *MovieInfo {
	info := &MovieInfo{Title: r.Title}
	if len(r.Genres) > 0 {
		info.Genre = &r.Genres[0].Name
	}
	if r.Overview != "" {
		info.Description = &r.Overview
	}
	return info
}
