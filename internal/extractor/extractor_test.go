package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"refgallery/pkg/models"
)

type noNetwork struct{ t *testing.T }

func (n noNetwork) RoundTrip(req *http.Request) (*http.Response, error) {
	n.t.Fatalf("unexpected network call to %s", req.URL)
	return nil, nil
}

func TestExtractDirectImage(t *testing.T) {
	e := New(Config{})
	// any request would fail the test: direct detection must not touch the network
	e.client.Transport = noNetwork{t}

	tests := []struct {
		name   string
		url    string
		direct bool
	}{
		{name: "jpg", url: "https://cdn.example.com/poses/a.jpg", direct: true},
		{name: "jpeg uppercase", url: "https://cdn.example.com/b.JPEG", direct: true},
		{name: "png with query string", url: "https://cdn.example.com/c.png?size=large&v=2", direct: true},
		{name: "gif", url: "https://cdn.example.com/d.gif", direct: true},
		{name: "webp", url: "https://cdn.example.com/e.webp", direct: true},
		{name: "extension in query only", url: "https://example.com/page?img=a.jpg", direct: false},
		{name: "plain page", url: "https://example.com/gallery", direct: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.direct {
				if isDirectImage(tt.url) {
					t.Fatalf("isDirectImage(%q) = true, want false", tt.url)
				}
				return
			}
			got := e.Extract(context.Background(), tt.url)
			if got.ImageURL != tt.url {
				t.Errorf("ImageURL = %q, want the input verbatim", got.ImageURL)
			}
			if got.Platform != models.PlatformDirect {
				t.Errorf("Platform = %q, want %q", got.Platform, models.PlatformDirect)
			}
		})
	}
}

func TestExtractOpenGraph(t *testing.T) {
	pages := map[string]string{
		"/og": `<html><head>
			<meta property="og:image" content="https://x/a.png">
			<meta property="og:title" content="Study A">
		</head></html>`,
		"/twitter": `<html><head>
			<meta name="twitter:image" content="https://x/b.png">
		</head></html>`,
		"/none": `<html><head><title>nothing here</title></head></html>`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("page fetched without browser user agent")
		}
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	e := New(Config{})

	t.Run("og image preferred", func(t *testing.T) {
		got := e.Extract(context.Background(), srv.URL+"/og")
		assert.Equal(t, "https://x/a.png", got.ImageURL)
		assert.Equal(t, models.PlatformUnknown, got.Platform)
		assert.Equal(t, "Study A", got.Title)
	})

	t.Run("twitter image fallback", func(t *testing.T) {
		got := e.Extract(context.Background(), srv.URL+"/twitter")
		assert.Equal(t, "https://x/b.png", got.ImageURL)
	})

	t.Run("no meta tags", func(t *testing.T) {
		got := e.Extract(context.Background(), srv.URL+"/none")
		assert.False(t, got.OK())
		assert.Equal(t, models.PlatformUnknown, got.Platform)
	})

	t.Run("non-2xx page", func(t *testing.T) {
		got := e.Extract(context.Background(), srv.URL+"/missing")
		assert.False(t, got.OK())
	})

	t.Run("idempotent on a static page", func(t *testing.T) {
		first := e.Extract(context.Background(), srv.URL+"/og")
		second := e.Extract(context.Background(), srv.URL+"/og")
		assert.Equal(t, first, second)
	})
}

func TestExtractDeviantArt(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/oembed-ok", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("url"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://x/full.png","thumbnail_url":"https://x/thumb.png","title":"Dragon","author_name":"artist1"}`))
	})
	mux.HandleFunc("/oembed-thumb", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"thumbnail_url":"https://x/thumb.png"}`))
	})
	mux.HandleFunc("/oembed-down", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	})
	// the "page" the open graph fallback fetches; path keeps the
	// deviantart.com marker so the router picks the right strategy
	mux.HandleFunc("/deviantart.com/art/piece", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<meta property="og:image" content="https://x/og.png">`))
	})

	target := srv.URL + "/deviantart.com/art/piece"

	t.Run("oembed success", func(t *testing.T) {
		e := New(Config{OEmbedBase: srv.URL + "/oembed-ok"})
		got := e.Extract(context.Background(), target)
		assert.Equal(t, models.ExtractionResult{
			ImageURL: "https://x/full.png",
			Platform: models.PlatformDeviantArt,
			Title:    "Dragon",
			Author:   "artist1",
		}, got)
	})

	t.Run("thumbnail when primary absent", func(t *testing.T) {
		e := New(Config{OEmbedBase: srv.URL + "/oembed-thumb"})
		got := e.Extract(context.Background(), target)
		assert.Equal(t, "https://x/thumb.png", got.ImageURL)
		assert.Equal(t, models.PlatformDeviantArt, got.Platform)
	})

	t.Run("oembed failure falls back to open graph, tag preserved", func(t *testing.T) {
		e := New(Config{OEmbedBase: srv.URL + "/oembed-down"})
		got := e.Extract(context.Background(), target)
		assert.Equal(t, "https://x/og.png", got.ImageURL)
		assert.Equal(t, models.PlatformDeviantArt, got.Platform)
	})
}

func TestExtractPlatformTagSurvivesFailure(t *testing.T) {
	// a server that is already gone: every strategy fails, the platform
	// tag must still name the targeted site
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	e := New(Config{OEmbedBase: base + "/oembed"})

	tests := []struct {
		url      string
		platform string
	}{
		{url: base + "/deviantart.com/art/x", platform: models.PlatformDeviantArt},
		{url: base + "/artstation.com/artwork/x", platform: models.PlatformArtStation},
		{url: base + "/pinterest.com/pin/x", platform: models.PlatformPinterest},
		{url: base + "/somewhere/else", platform: models.PlatformUnknown},
	}
	for _, tt := range tests {
		got := e.Extract(context.Background(), tt.url)
		if got.OK() {
			t.Errorf("Extract(%q) produced an image from a dead server", tt.url)
		}
		if got.Platform != tt.platform {
			t.Errorf("Extract(%q) platform = %q, want %q", tt.url, got.Platform, tt.platform)
		}
	}
}
