package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	movieDto "github.com/reelog/reelog-backend/internal/modules/movie/dto"
	"github.com/reelog/reelog-backend/pkg/apperror"
)

// MetadataClient is the boundary to the third-party movie API. The core
// never performs its own retries or caching here; throttling and
// response caching live in the movie service.
type MetadataClient interface {
	GetMovie(ctx context.Context, movieID int64) (*movieDto.MovieDetail, error)
	// Search returns the raw downstream response body so it can be
	// cached and served verbatim.
	Search(ctx context.Context, query string, page int) ([]byte, error)
}

type tmdbClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewTMDBClient(baseURL, apiKey string) MetadataClient {
	return &tmdbClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *tmdbClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("api_key", c.apiKey)
	params.Set("language", "ko-KR")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("movie api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperror.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("movie api returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (c *tmdbClient) GetMovie(ctx context.Context, movieID int64) (*movieDto.MovieDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits")

	body, err := c.get(ctx, "/movie/"+strconv.FormatInt(movieID, 10), params)
	if err != nil {
		return nil, err
	}

	var raw struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		PosterPath  string `json:"poster_path"`
		Overview    string `json:"overview"`
		ReleaseDate string `json:"release_date"`
		Genres      []struct {
			Name string `json:"name"`
		} `json:"genres"`
		Credits struct {
			Cast []struct {
				Name string `json:"name"`
			} `json:"cast"`
		} `json:"credits"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode movie response: %w", err)
	}

	detail := &movieDto.MovieDetail{
		ID:          raw.ID,
		Title:       raw.Title,
		PosterPath:  raw.PosterPath,
		Overview:    raw.Overview,
		ReleaseDate: raw.ReleaseDate,
	}
	for _, g := range raw.Genres {
		detail.Genres = append(detail.Genres, g.Name)
	}
	for i, c := range raw.Credits.Cast {
		if i >= 10 {
			break
		}
		detail.Cast = append(detail.Cast, c.Name)
	}

	return detail, nil
}

func (c *tmdbClient) Search(ctx context.Context, query string, page int) ([]byte, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	return c.get(ctx, "/search/movie", params)
}
