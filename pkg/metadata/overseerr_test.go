package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "routarr/pkg/errors"
	"routarr/pkg/models"
)

func TestOverseerrFetchMovie(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"Dune","keywords":[{"id":1,"name":"desert"}]}`))
	}))
	defer server.Close()

	provider, err := NewOverseerrProvider(&OverseerrConfig{URL: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOverseerrProvider() error = %v", err)
	}

	data, err := provider.Fetch(context.Background(), models.MediaTypeMovie, 438631)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotPath != "/api/v1/movie/438631" {
		t.Errorf("request path = %q, want /api/v1/movie/438631", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("X-Api-Key = %q, want test-key", gotKey)
	}
	if data["title"] != "Dune" {
		t.Errorf("data[title] = %v, want Dune", data["title"])
	}
	if _, ok := data[models.MetadataKeywords]; !ok {
		t.Error("keywords field missing from decoded metadata")
	}
}

func TestOverseerrFetchTVPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	provider, err := NewOverseerrProvider(&OverseerrConfig{URL: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOverseerrProvider() error = %v", err)
	}

	if _, err := provider.Fetch(context.Background(), models.MediaTypeTV, 1399); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotPath != "/api/v1/tv/1399" {
		t.Errorf("request path = %q, want /api/v1/tv/1399", gotPath)
	}
}

func TestOverseerrFetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	provider, err := NewOverseerrProvider(&OverseerrConfig{URL: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOverseerrProvider() error = %v", err)
	}

	_, err = provider.Fetch(context.Background(), models.MediaTypeMovie, 1)
	if !errors.Is(err, apperrors.ErrExternalService) {
		t.Errorf("Fetch() error = %v, want ErrExternalService", err)
	}
}

func TestNewOverseerrProviderRequiresCredentials(t *testing.T) {
	if _, err := NewOverseerrProvider(&OverseerrConfig{}); err == nil {
		t.Error("NewOverseerrProvider() accepted empty credentials")
	}
}

func TestNoneProvider(t *testing.T) {
	data, err := None{}.Fetch(context.Background(), models.MediaTypeMovie, 42)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(data) != 0 {
		t.Errorf("None provider returned %d fields, want empty", len(data))
	}
}

func TestRatingContainerShape(t *testing.T) {
	container := ratingContainer("TV-MA")
	results, ok := container["results"].([]any)
	if !ok || len(results) != 1 {
		t.Fatalf("ratingContainer results = %v, want one entry", container["results"])
	}

	empty := ratingContainer("")
	results, ok = empty["results"].([]any)
	if !ok || len(results) != 0 {
		t.Errorf("ratingContainer(\"\") results = %v, want empty list", empty["results"])
	}
}
