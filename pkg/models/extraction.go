package models

// Platform tags reported by the extractor. The set is open ended: it names
// which strategy produced a result and is never validated as an enum.
const (
	PlatformDirect     = "direct"
	PlatformDeviantArt = "deviantart"
	PlatformArtStation = "artstation"
	PlatformPinterest  = "pinterest"
	PlatformUnknown    = "unknown"
)

// ExtractionResult is what the URL extractor hands back for one source URL.
//
// ImageURL empty means extraction failed; Platform is always set so the
// caller still knows which site was targeted. Title and Author are
// best-effort and only present when the source exposes them.
type ExtractionResult struct {
	ImageURL string `json:"image_url,omitempty"`
	Platform string `json:"platform"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
}

// OK reports whether the extraction produced a usable image URL.
func (r ExtractionResult) OK() bool {
	return r.ImageURL != ""
}
