package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"refgallery/internal/providers"
	"refgallery/pkg/models"
)

type fakeStore struct {
	subs      []models.Submission
	tags      map[string][]string
	err       error
	gotQuery  string
	gotOffset int
	gotLimit  int
}

func (f *fakeStore) FindApproved(_ context.Context, titleQuery string, offset, limit int) ([]models.Submission, error) {
	f.gotQuery = titleQuery
	f.gotOffset = offset
	f.gotLimit = limit
	return f.subs, f.err
}

func (f *fakeStore) TagsFor(_ context.Context, id string) ([]string, error) {
	return f.tags[id], nil
}

type fakeProvider struct {
	name     string
	items    []models.SearchResult
	err      error
	calls    int
	gotQuery string
}

var _ providers.Client = (*fakeProvider)(nil)

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(_ context.Context, query string, page, perPage int) ([]models.SearchResult, error) {
	f.calls++
	f.gotQuery = query
	return f.items, f.err
}

type fakeAnalytics struct {
	queries []string
	userIDs []string
}

func (f *fakeAnalytics) RecordSearch(query, userID string) {
	f.queries = append(f.queries, query)
	f.userIDs = append(f.userIDs, userID)
}

func externalItem(source, id string) models.SearchResult {
	return models.SearchResult{
		ID:     source + "-" + id,
		Title:  "Untitled",
		URL:    "https://img/" + id,
		Thumb:  "https://img/" + id,
		Source: source,
	}
}

func TestSearchFailureIsolation(t *testing.T) {
	store := &fakeStore{
		subs: []models.Submission{
			{ID: "s1", Title: "Cat pose", ImageURL: "https://img/s1"},
			{ID: "s2", Title: "Cat sketch", ImageURL: "https://img/s2"},
		},
		tags: map[string][]string{"s1": {"portrait", "natural"}},
	}
	unsplash := &fakeProvider{name: models.SourceUnsplash, err: errors.New("boom")}
	pexels := &fakeProvider{name: models.SourcePexels, items: []models.SearchResult{
		externalItem(models.SourcePexels, "1"),
		externalItem(models.SourcePexels, "2"),
		externalItem(models.SourcePexels, "3"),
	}}

	agg := NewAggregator(store, nil, unsplash, pexels)
	results := agg.Search(context.Background(), Query{Q: "cat", Source: SourceAll, Page: 1, PerPage: 20})

	// one broken source must not fail the search, and block order is fixed:
	// submissions first, then pexels
	assert.Len(t, results, 5)
	assert.Equal(t, "s1", results[0].ID)
	assert.Equal(t, "s2", results[1].ID)
	for _, r := range results[2:] {
		assert.Equal(t, models.SourcePexels, r.Source)
	}

	assert.Equal(t, []string{"portrait", "natural"}, results[0].Tags)
	assert.Equal(t, models.SourceSubmissions, results[0].Source)
	assert.Equal(t, results[0].URL, results[0].Thumb)
}

func TestSearchDefaultProviderQuery(t *testing.T) {
	unsplash := &fakeProvider{name: models.SourceUnsplash}
	pexels := &fakeProvider{name: models.SourcePexels}
	agg := NewAggregator(&fakeStore{}, nil, unsplash, pexels)

	agg.Search(context.Background(), Query{Q: "", Source: models.SourceUnsplash, Page: 1, PerPage: 15})

	assert.Equal(t, 1, unsplash.calls)
	assert.Equal(t, "pose", unsplash.gotQuery)
	assert.Equal(t, 0, pexels.calls, "unselected source must not be queried")
}

func TestSearchSourceSelection(t *testing.T) {
	store := &fakeStore{subs: []models.Submission{{ID: "s1", Title: "A", ImageURL: "u"}}}
	unsplash := &fakeProvider{name: models.SourceUnsplash, items: []models.SearchResult{externalItem(models.SourceUnsplash, "1")}}
	pexels := &fakeProvider{name: models.SourcePexels, items: []models.SearchResult{externalItem(models.SourcePexels, "1")}}
	agg := NewAggregator(store, nil, unsplash, pexels)

	results := agg.Search(context.Background(), Query{Source: models.SourceSubmissions, Page: 1, PerPage: 10})
	assert.Len(t, results, 1)
	assert.Equal(t, 0, unsplash.calls)
	assert.Equal(t, 0, pexels.calls)

	results = agg.Search(context.Background(), Query{Source: SourceAll, Page: 1, PerPage: 10})
	assert.Len(t, results, 3)
	assert.Equal(t, models.SourceSubmissions, results[0].Source)
	assert.Equal(t, models.SourceUnsplash, results[1].Source)
	assert.Equal(t, models.SourcePexels, results[2].Source)
}

func TestSearchStoreFailureIsolated(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	pexels := &fakeProvider{name: models.SourcePexels, items: []models.SearchResult{externalItem(models.SourcePexels, "1")}}
	agg := NewAggregator(store, nil, pexels)

	results := agg.Search(context.Background(), Query{Q: "cat", Source: SourceAll, Page: 1, PerPage: 10})
	assert.Len(t, results, 1)
	assert.Equal(t, models.SourcePexels, results[0].Source)
}

func TestSearchPaging(t *testing.T) {
	store := &fakeStore{}
	agg := NewAggregator(store, nil)

	agg.Search(context.Background(), Query{Q: "cat", Source: models.SourceSubmissions, Page: 3, PerPage: 10})
	assert.Equal(t, 20, store.gotOffset)
	assert.Equal(t, 10, store.gotLimit)
	assert.Equal(t, "cat", store.gotQuery)
}

func TestSearchRecordsAnalytics(t *testing.T) {
	sink := &fakeAnalytics{}
	agg := NewAggregator(&fakeStore{}, sink)

	agg.Search(context.Background(), Query{Q: "cat", Source: SourceAll, Page: 1, PerPage: 10, UserID: "u-1"})

	assert.Equal(t, []string{"cat"}, sink.queries)
	assert.Equal(t, []string{"u-1"}, sink.userIDs)
}
