package metadata

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"routarr/pkg/errors"
	"routarr/pkg/models"
)

const defaultTimeout = 30 * time.Second

// OverseerrConfig configures the Overseerr metadata provider.
type OverseerrConfig struct {
	URL    string
	APIKey string
	Client *http.Client
}

// OverseerrProvider fetches media details from the request manager's own
// API and exposes the raw details object as the metadata mapping, so
// conditions can reference any field the API returns.
type OverseerrProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOverseerrProvider creates a new OverseerrProvider.
func NewOverseerrProvider(cfg *OverseerrConfig) (*OverseerrProvider, error) {
	if cfg.URL == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("overseerr provider: %w: url and api key are required", errors.ErrInvalidInput)
	}

	httpClient := cfg.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &OverseerrProvider{
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// Fetch implements Provider.
func (p *OverseerrProvider) Fetch(ctx context.Context, mediaType string, tmdbID int64) (models.Metadata, error) {
	endpoint := fmt.Sprintf("%s/api/v1/%s/%d", p.baseURL, detailsPath(mediaType), tmdbID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-Api-Key", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s details for tmdb id %d: %w", mediaType, tmdbID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: overseerr returned status %d for tmdb id %d",
			errors.ErrExternalService, resp.StatusCode, tmdbID)
	}

	var data models.Metadata
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding details response: %w", err)
	}
	return data, nil
}

func detailsPath(mediaType string) string {
	if mediaType == models.MediaTypeTV {
		return "tv"
	}
	return "movie"
}
