package search

import (
	"context"
	"log"

	"refgallery/internal/providers"
	"refgallery/pkg/models"
)

// SourceAll selects every source at once.
const SourceAll = "all"

// defaultQuery is what external providers are asked for when the user
// query is empty; the local store just returns newest approved items.
const defaultQuery = "pose"

// Store is the local content store: approved submissions matched by title
// substring, newest first.
type Store interface {
	FindApproved(ctx context.Context, titleQuery string, offset, limit int) ([]models.Submission, error)
	TagsFor(ctx context.Context, submissionID string) ([]string, error)
}

// Analytics receives a fire-and-forget record of every search. It must
// never block; a failing sink must not fail the search.
type Analytics interface {
	RecordSearch(query, userID string)
}

// Query carries one search request.
type Query struct {
	Q       string
	Source  string // "all", "submissions", "unsplash" or "pexels"
	Page    int    // 1-based
	PerPage int
	UserID  string // optional, analytics only
}

// Aggregator fans a query out to the local store and the registered
// provider clients and concatenates the per-source blocks in a fixed
// order: submissions first, then each provider in registration order.
type Aggregator struct {
	store     Store
	providers []providers.Client
	analytics Analytics
}

func NewAggregator(store Store, analytics Analytics, clients ...providers.Client) *Aggregator {
	return &Aggregator{store: store, providers: clients, analytics: analytics}
}

// Search runs the requested source blocks. A failing source contributes
// zero results; the call itself never fails, so callers check for an empty
// slice rather than an error.
func (a *Aggregator) Search(ctx context.Context, q Query) []models.SearchResult {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = 20
	}

	results := make([]models.SearchResult, 0, q.PerPage)

	if q.Source == SourceAll || q.Source == models.SourceSubmissions {
		results = append(results, a.searchSubmissions(ctx, q)...)
	}

	for _, client := range a.providers {
		if q.Source != SourceAll && q.Source != client.Name() {
			continue
		}
		query := q.Q
		if query == "" {
			query = defaultQuery
		}
		items, err := client.Search(ctx, query, q.Page, q.PerPage)
		if err != nil {
			log.Printf("[search] source %s error: %v", client.Name(), err)
			// keep going: one broken source should not kill the whole search
			continue
		}
		results = append(results, items...)
	}

	if a.analytics != nil {
		a.analytics.RecordSearch(q.Q, q.UserID)
	}
	return results
}

func (a *Aggregator) searchSubmissions(ctx context.Context, q Query) []models.SearchResult {
	subs, err := a.store.FindApproved(ctx, q.Q, (q.Page-1)*q.PerPage, q.PerPage)
	if err != nil {
		log.Printf("[search] submissions store error: %v", err)
		return nil
	}

	out := make([]models.SearchResult, 0, len(subs))
	for _, sub := range subs {
		tags, err := a.store.TagsFor(ctx, sub.ID)
		if err != nil {
			log.Printf("[search] tags for %s: %v", sub.ID, err)
			tags = nil
		}
		out = append(out, models.SearchResult{
			ID:      sub.ID,
			Title:   sub.Title,
			URL:     sub.ImageURL,
			Thumb:   sub.ImageURL,
			Credits: sub.Credits,
			Source:  models.SourceSubmissions,
			Tags:    tags,
		})
	}
	return out
}
