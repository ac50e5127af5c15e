package models

// Search sources. Results carry one of these in Source so the UI can route
// local submissions differently from external provider hits.
const (
	SourceSubmissions = "submissions"
	SourceUnsplash    = "unsplash"
	SourcePexels      = "pexels"
)

// SearchResult is the normalized form every search source is mapped into
// before results are concatenated.
//
// ID is globally unique within one response: the store's native key for
// local items, "<provider>-<native_id>" for external ones. Thumb may equal
// URL when the source has no distinct thumbnail. Tags are only populated
// for local submissions; SourceURL only for external providers.
type SearchResult struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	Thumb     string   `json:"thumb"`
	Credits   string   `json:"credits,omitempty"`
	Source    string   `json:"source"`
	Tags      []string `json:"tags,omitempty"`
	SourceURL string   `json:"source_url,omitempty"`
}
