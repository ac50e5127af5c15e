package extractor

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// MetaScanner pulls the content attribute of a meta tag identified by one
// of its attributes, e.g. property="og:image" or name="twitter:image".
// Strategy code only talks to this interface, so the scan implementation
// can change without touching the strategies.
type MetaScanner interface {
	MetaContent(markup, attr, value string) string
}

// PatternScanner is the default scanner: a single-pass, case-insensitive
// regex match over the raw markup, tolerant of single and double quoting.
// It assumes the identifying attribute precedes content, which holds for
// the pages the extractor targets.
type PatternScanner struct {
	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

func NewPatternScanner() *PatternScanner {
	return &PatternScanner{cache: make(map[string]*regexp.Regexp)}
}

func (s *PatternScanner) MetaContent(markup, attr, value string) string {
	m := s.pattern(attr, value).FindStringSubmatch(markup)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func (s *PatternScanner) pattern(attr, value string) *regexp.Regexp {
	key := attr + "\x00" + value

	s.mu.Lock()
	defer s.mu.Unlock()
	if re, ok := s.cache[key]; ok {
		return re
	}

	expr := fmt.Sprintf(`(?i)<meta[^>]*%s=["']%s["'][^>]*content=["']([^"']+)["']`,
		regexp.QuoteMeta(attr), regexp.QuoteMeta(value))
	re := regexp.MustCompile(expr)
	s.cache[key] = re
	return re
}

// DOMScanner parses the markup and walks meta tags structurally. Slower
// than PatternScanner but robust against attribute order and encoding
// quirks. Selected with META_SCAN_MODE=dom.
type DOMScanner struct{}

func (DOMScanner) MetaContent(markup, attr, value string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	var content string
	doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		v, ok := sel.Attr(attr)
		if !ok || !strings.EqualFold(v, value) {
			return true
		}
		content, _ = sel.Attr("content")
		return false
	})
	return strings.TrimSpace(content)
}
