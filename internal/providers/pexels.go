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

const pexelsBase = "https://api.pexels.com"

// Pexels is a thin wrapper over the Pexels photo search API.
type Pexels struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewPexels(apiKey string, timeout time.Duration) *Pexels {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Pexels{
		BaseURL: pexelsBase,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (p *Pexels) Name() string { return models.SourcePexels }

type pexelsResponse struct {
	Photos []struct {
		ID           int64  `json:"id"`
		Alt          string `json:"alt"`
		Photographer string `json:"photographer"`
		URL          string `json:"url"`
		Src          struct {
			Large  string `json:"large"`
			Medium string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}

func (p *Pexels) Search(ctx context.Context, query string, page, perPage int) ([]models.SearchResult, error) {
	if p.APIKey == "" {
		return nil, fmt.Errorf("pexels: %w", ErrNoAPIKey)
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.BaseURL+"/v1/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("pexels: build request: %w", err)
	}
	req.Header.Set("Authorization", p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pexels: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("pexels: status %d: %s", resp.StatusCode, string(body))
	}

	var payload pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("pexels: decode: %w", err)
	}

	out := make([]models.SearchResult, 0, len(payload.Photos))
	for _, photo := range payload.Photos {
		title := photo.Alt
		if title == "" {
			title = "Untitled"
		}
		out = append(out, models.SearchResult{
			ID:        "pexels-" + strconv.FormatInt(photo.ID, 10),
			Title:     title,
			URL:       photo.Src.Large,
			Thumb:     photo.Src.Medium,
			Credits:   photo.Photographer,
			Source:    models.SourcePexels,
			SourceURL: photo.URL,
		})
	}
	return out, nil
}
