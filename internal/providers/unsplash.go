package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"refgallery/pkg/models"
)

const unsplashBase = "https://api.unsplash.com"

// Unsplash is a thin wrapper over the Unsplash photo search API.
type Unsplash struct {
	BaseURL   string
	AccessKey string
	Client    *http.Client
}

func NewUnsplash(accessKey string, timeout time.Duration) *Unsplash {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Unsplash{
		BaseURL:   unsplashBase,
		AccessKey: accessKey,
		Client:    &http.Client{Timeout: timeout},
	}
}

func (u *Unsplash) Name() string { return models.SourceUnsplash }

type unsplashResponse struct {
	Results []struct {
		ID             string `json:"id"`
		Description    string `json:"description"`
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
			Small   string `json:"small"`
		} `json:"urls"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"results"`
}

func (u *Unsplash) Search(ctx context.Context, query string, page, perPage int) ([]models.SearchResult, error) {
	if u.AccessKey == "" {
		return nil, fmt.Errorf("unsplash: %w", ErrNoAPIKey)
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		u.BaseURL+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("unsplash: build request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.AccessKey)

	resp, err := u.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unsplash: status %d: %s", resp.StatusCode, string(body))
	}

	var payload unsplashResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("unsplash: decode: %w", err)
	}

	out := make([]models.SearchResult, 0, len(payload.Results))
	for _, photo := range payload.Results {
		title := photo.Description
		if title == "" {
			title = photo.AltDescription
		}
		if title == "" {
			title = "Untitled"
		}
		out = append(out, models.SearchResult{
			ID:        "unsplash-" + photo.ID,
			Title:     title,
			URL:       photo.URLs.Regular,
			Thumb:     photo.URLs.Small,
			Credits:   photo.User.Name,
			Source:    models.SourceUnsplash,
			SourceURL: photo.Links.HTML,
		})
	}
	return out, nil
}
