package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"refgallery/pkg/models"
)

type oembedResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
}

// extractDeviantArt asks the platform's public oEmbed endpoint for the
// resolved image. Any failure falls back to the Open Graph strategy with
// the deviantart tag preserved, so the caller still knows which site was
// targeted even though extraction used the generic method.
func (e *Extractor) extractDeviantArt(ctx context.Context, target string) models.ExtractionResult {
	emb, err := e.fetchOEmbed(ctx, target)
	if err != nil {
		log.Printf("[extractor] deviantart oembed: %v", err)
		return e.extractOpenGraph(ctx, target, models.PlatformDeviantArt)
	}

	imageURL := emb.URL
	if imageURL == "" {
		imageURL = emb.ThumbnailURL
	}
	if imageURL == "" {
		// payload carried no image at all
		return e.extractOpenGraph(ctx, target, models.PlatformDeviantArt)
	}

	return models.ExtractionResult{
		ImageURL: imageURL,
		Platform: models.PlatformDeviantArt,
		Title:    emb.Title,
		Author:   emb.AuthorName,
	}
}

func (e *Extractor) fetchOEmbed(ctx context.Context, target string) (*oembedResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		e.oembedBase+"?url="+url.QueryEscape(target), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var emb oembedResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&emb); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &emb, nil
}
