// Package tmdb resolves catalog movie ids to display metadata via the TMDB
// API. Every failure degrades to a placeholder value; nothing in here may
// abort a ranking or engagement operation.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"movierec/pkg/apperr"
)

const (
	posterBase = "https://image.tmdb.org/t/p/original"

	PlaceholderNoPoster = "https://via.placeholder.com/150?text=No+Poster"
	PlaceholderError    = "https://via.placeholder.com/150?text=Error+Loading"
)

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Metadata is the display bundle for one movie. Fields that could not be
// fetched hold placeholder or zero values.
type Metadata struct {
	MovieID    int      `json:"movie_id"`
	Overview   string   `json:"overview,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	Cast       []string `json:"cast,omitempty"`
	PosterURL  string   `json:"poster_url"`
	TrailerURL string   `json:"trailer_url,omitempty"`
}

type movieDetail struct {
	Overview   string `json:"overview"`
	PosterPath string `json:"poster_path"`
	Genres     []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

type credits struct {
	Cast []struct {
		Name string `json:"name"`
	} `json:"cast"`
}

type videos struct {
	Results []struct {
		Site string `json:"site"`
		Type string `json:"type"`
		Key  string `json:"key"`
	} `json:"results"`
}

// PosterURL resolves a movie id to a poster image URL. It never fails:
// fetch errors yield an error placeholder and a missing poster path yields
// a no-poster placeholder.
func (c *Client) PosterURL(ctx context.Context, movieID int) string {
	var d movieDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", movieID), &d); err != nil {
		slog.Warn("poster fetch failed", "movie_id", movieID, "error", err)
		return PlaceholderError
	}
	if d.PosterPath == "" {
		return PlaceholderNoPoster
	}
	return posterBase + d.PosterPath
}

// Metadata gathers detail, cast and trailer for a movie. Partial failures
// leave the affected fields at their placeholder values.
func (c *Client) Metadata(ctx context.Context, movieID int) Metadata {
	md := Metadata{MovieID: movieID, PosterURL: PlaceholderError}

	var d movieDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", movieID), &d); err != nil {
		slog.Warn("metadata fetch failed", "movie_id", movieID, "error", err)
		return md
	}
	md.Overview = d.Overview
	for _, g := range d.Genres {
		md.Genres = append(md.Genres, g.Name)
	}
	if d.PosterPath != "" {
		md.PosterURL = posterBase + d.PosterPath
	} else {
		md.PosterURL = PlaceholderNoPoster
	}

	var cr credits
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/credits", movieID), &cr); err == nil {
		for i, member := range cr.Cast {
			if i >= 5 {
				break
			}
			md.Cast = append(md.Cast, member.Name)
		}
	}

	var vs videos
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/videos", movieID), &vs); err == nil {
		for _, v := range vs.Results {
			if v.Site == "YouTube" && v.Type == "Trailer" {
				md.TrailerURL = "https://www.youtube.com/watch?v=" + v.Key
				break
			}
		}
	}

	return md
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	url := fmt.Sprintf("%s%s?api_key=%s&language=en-US", c.baseURL, path, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", apperr.ErrExternalService, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: tmdb returned %d", apperr.ErrExternalService, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode response: %v", apperr.ErrExternalService, err)
	}
	return nil
}
