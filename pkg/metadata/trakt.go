package metadata

import (
	"context"
	"fmt"

	"github.com/jacklaaa89/trakt"
	"github.com/jacklaaa89/trakt/search"

	"routarr/pkg/models"
)

// TraktProvider resolves metadata through the Trakt catalog, looking the
// requested item up by its TMDB ID. Genres and certification from the
// extended record are mapped into the condition field shape.
type TraktProvider struct{}

// NewTraktProvider creates a new TraktProvider.
func NewTraktProvider(apiKey string) *TraktProvider {
	trakt.Key = apiKey
	return &TraktProvider{}
}

// Fetch implements Provider.
func (p *TraktProvider) Fetch(ctx context.Context, mediaType string, tmdbID int64) (models.Metadata, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	searchType := trakt.TypeMovie
	if mediaType == models.MediaTypeTV {
		searchType = trakt.TypeShow
	}

	iterator := search.IDLookup(trakt.TMDB(tmdbID), &trakt.IDLookupParams{
		Type:     []trakt.Type{searchType},
		Extended: trakt.ExtendedTypeFull,
	})

	for iterator.Next() {
		result, err := iterator.Result()
		if err != nil {
			return nil, fmt.Errorf("scanning trakt result for tmdb id %d: %w", tmdbID, err)
		}
		if data := metadataFromResult(result); data != nil {
			return data, nil
		}
	}
	if err := iterator.Err(); err != nil {
		return nil, fmt.Errorf("looking up tmdb id %d on trakt: %w", tmdbID, err)
	}

	return models.Metadata{}, nil
}

func metadataFromResult(result *trakt.SearchResult) models.Metadata {
	switch {
	case result.Movie != nil:
		return movieMetadata(result.Movie)
	case result.Show != nil:
		return showMetadata(result.Show)
	}
	return nil
}

func movieMetadata(movie *trakt.Movie) models.Metadata {
	return models.Metadata{
		"title":            movie.Title,
		"year":             movie.Year,
		"genres":           movie.Genres,
		"originalLanguage": movie.Language,
		"runtime":          movie.Runtime,
		"certification":    movie.Certification,
		"contentRatings":   ratingContainer(movie.Certification),
	}
}

func showMetadata(show *trakt.Show) models.Metadata {
	return models.Metadata{
		"title":            show.Title,
		"year":             show.Year,
		"genres":           show.Genres,
		"originalLanguage": show.Language,
		"certification":    show.Certification,
		"contentRatings":   ratingContainer(show.Certification),
	}
}

// ratingContainer wraps a certification in the results shape the rating
// matcher consumes. An absent certification yields an empty result list,
// which every rating condition rejects.
func ratingContainer(certification string) map[string]any {
	results := []any{}
	if certification != "" {
		results = append(results, map[string]any{"rating": certification})
	}
	return map[string]any{"results": results}
}
