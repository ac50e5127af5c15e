package extractor

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"refgallery/pkg/models"
)

// extractOpenGraph is the generic fallback: fetch the page with a
// browser-like user agent and scan the raw markup for preview meta tags —
// og:image first, then twitter:image, plus og:title when present.
func (e *Extractor) extractOpenGraph(ctx context.Context, target, platform string) models.ExtractionResult {
	res := models.ExtractionResult{Platform: platform}

	markup, err := e.fetchPage(ctx, target)
	if err != nil {
		log.Printf("[extractor] open graph (%s): %v", platform, err)
		return res
	}

	res.ImageURL = e.scanner.MetaContent(markup, "property", "og:image")
	if res.ImageURL == "" {
		res.ImageURL = e.scanner.MetaContent(markup, "name", "twitter:image")
	}
	res.Title = e.scanner.MetaContent(markup, "property", "og:title")
	return res
}

func (e *Extractor) fetchPage(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}
