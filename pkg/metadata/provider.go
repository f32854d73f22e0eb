package metadata

import (
	"context"

	"routarr/pkg/models"
)

// Provider retrieves catalog metadata for one requested media item. The
// returned mapping is open: filter conditions reference whatever fields
// the provider exposes.
type Provider interface {
	Fetch(ctx context.Context, mediaType string, tmdbID int64) (models.Metadata, error)
}

// None is a Provider that always returns an empty mapping. With it, every
// metadata-dependent condition fails and routing runs on the notification
// alone.
type None struct{}

// Fetch implements Provider.
func (None) Fetch(_ context.Context, _ string, _ int64) (models.Metadata, error) {
	return models.Metadata{}, nil
}
