package extractor

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"refgallery/pkg/models"
)

const (
	defaultOEmbedBase = "https://backend.deviantart.com/oembed"

	// browser-like UA to reduce anti-bot rejection on page fetches
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// cap on how much of a page we read before scanning; the meta tags we
	// care about live in <head>
	maxBodyBytes = 2 << 20
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type Config struct {
	Timeout    time.Duration // per-call bound on outbound requests
	OEmbedBase string        // DeviantArt oEmbed endpoint, overridable in tests
	Scanner    MetaScanner   // nil means the lenient pattern scanner
}

// Extractor resolves an arbitrary page or image URL into its best-guess
// full-resolution image via an ordered strategy chain: direct image
// detection, platform-specific extraction, then the Open Graph fallback.
type Extractor struct {
	client     *http.Client
	oembedBase string
	scanner    MetaScanner
}

func New(cfg Config) *Extractor {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	base := cfg.OEmbedBase
	if base == "" {
		base = defaultOEmbedBase
	}
	scanner := cfg.Scanner
	if scanner == nil {
		scanner = NewPatternScanner()
	}
	return &Extractor{
		client:     &http.Client{Timeout: timeout},
		oembedBase: base,
		scanner:    scanner,
	}
}

// Extract runs the strategy chain for rawURL, first match wins. It never
// fails: every internal error degrades to a result with an empty ImageURL
// and the platform tag of the strategy that was attempted.
func (e *Extractor) Extract(ctx context.Context, rawURL string) models.ExtractionResult {
	if isDirectImage(rawURL) {
		return models.ExtractionResult{ImageURL: rawURL, Platform: models.PlatformDirect}
	}

	lower := strings.ToLower(rawURL)
	switch {
	case strings.Contains(lower, "deviantart.com"):
		return e.extractDeviantArt(ctx, rawURL)
	case strings.Contains(lower, "artstation.com"):
		return e.extractOpenGraph(ctx, rawURL, models.PlatformArtStation)
	case strings.Contains(lower, "pinterest.com"), strings.Contains(lower, "pin.it"):
		return e.extractOpenGraph(ctx, rawURL, models.PlatformPinterest)
	}

	return e.extractOpenGraph(ctx, rawURL, models.PlatformUnknown)
}

// isDirectImage reports whether the URL path (query string ignored) ends
// in a known image extension. No network call is made for these.
func isDirectImage(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return imageExtensions[strings.ToLower(path.Ext(u.Path))]
}
