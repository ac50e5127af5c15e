package providers

import (
	"context"
	"errors"

	"refgallery/pkg/models"
)

// ErrNoAPIKey marks a client whose credential was never configured. The
// aggregator treats it like any other provider failure: log and move on
// with zero results from that source.
var ErrNoAPIKey = errors.New("api key not configured")

// Client is implemented by each external image-search provider. Each
// client fetches its own payload format and maps it into SearchResult.
type Client interface {
	Name() string
	Search(ctx context.Context, query string, page, perPage int) ([]models.SearchResult, error)
}
