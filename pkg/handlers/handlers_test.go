package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"routarr/pkg/metadata"
	"routarr/pkg/models"
	"routarr/pkg/services"
)

type stubDispatcher struct {
	dispatched []string
}

func (s *stubDispatcher) Dispatch(_ context.Context, instanceID string, _ *models.Notification) error {
	s.dispatched = append(s.dispatched, instanceID)
	return nil
}

type stubRepository struct {
	decisions []*models.Decision
}

func (s *stubRepository) SaveDecision(d *models.Decision) error {
	s.decisions = append(s.decisions, d)
	return nil
}

func (s *stubRepository) GetDecision(string) (*models.Decision, error) { return nil, nil }

func (s *stubRepository) FindRecentDecisions(int) ([]*models.Decision, error) {
	return s.decisions, nil
}

func (s *stubRepository) CountDecisions(bool) (int, error) { return 0, nil }
func (s *stubRepository) Close() error                     { return nil }

func newTestHandler(apiKey string) *Handler {
	filters := []models.Filter{
		{MediaType: models.MediaTypeMovie, Apply: models.ApplyOne("radarr-main")},
	}
	service := services.NewRoutingService(&stubRepository{}, metadata.None{}, &stubDispatcher{}, filters)
	return NewHandler(service, apiKey)
}

const movieWebhook = `{
	"notification_type": "MEDIA_AUTO_APPROVED",
	"subject": "Dune (2021)",
	"media": {"media_type": "movie", "tmdbId": 438631, "status": "PENDING"},
	"request": {"requestedBy_username": "amaury"}
}`

func TestWebhookAccepted(t *testing.T) {
	router := newTestHandler("").Router()

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(movieWebhook))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d, body %s", rec.Code, http.StatusAccepted, rec.Body.String())
	}
}

func TestWebhookRejectsBadJSON(t *testing.T) {
	router := newTestHandler("").Router()

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestWebhookRejectsMissingMedia(t *testing.T) {
	router := newTestHandler("").Router()

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"subject":"broken"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestWebhookRejectsUnknownMediaType(t *testing.T) {
	router := newTestHandler("").Router()

	body := `{"media": {"media_type": "music", "tmdbId": 1}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestMatchDryRun(t *testing.T) {
	router := newTestHandler("").Router()

	req := httptest.NewRequest(http.MethodPost, "/api/match", strings.NewReader(movieWebhook))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var response struct {
		Data services.Evaluation `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !response.Data.Matched || response.Data.FilterIndex != 0 {
		t.Errorf("evaluation = %+v, want match at index 0", response.Data)
	}
	if len(response.Data.Instances) != 1 || response.Data.Instances[0] != "radarr-main" {
		t.Errorf("instances = %v, want [radarr-main]", response.Data.Instances)
	}
}

func TestMatchDryRunInlineMetadata(t *testing.T) {
	filters := []models.Filter{
		{
			MediaType:  models.MediaTypeTV,
			Conditions: map[string]models.Condition{"keywords": models.PlainCondition("anime")},
			Apply:      models.ApplyOne("sonarr-anime"),
		},
	}
	service := services.NewRoutingService(&stubRepository{}, metadata.None{}, &stubDispatcher{}, filters)
	router := NewHandler(service, "").Router()

	// The configured provider returns nothing, so the match can only come
	// from the inline metadata in the request body.
	body := `{
		"notification": {
			"media": {"media_type": "tv", "tmdbId": 209867}
		},
		"metadata": {
			"keywords": [{"id": 210024, "name": "anime"}]
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/match", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var response struct {
		Data services.Evaluation `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !response.Data.Matched {
		t.Errorf("evaluation = %+v, want match from inline metadata", response.Data)
	}
}

func TestFiltersEndpoint(t *testing.T) {
	router := newTestHandler("").Router()

	req := httptest.NewRequest(http.MethodGet, "/api/filters", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "radarr-main") {
		t.Errorf("filters response missing configured filter: %s", rec.Body.String())
	}
}

func TestHistoryRejectsBadLimit(t *testing.T) {
	router := newTestHandler("").Router()

	req := httptest.NewRequest(http.MethodGet, "/api/history?limit=-2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAuthMiddleware(t *testing.T) {
	router := newTestHandler("sekret").Router()

	tests := []struct {
		name       string
		path       string
		header     map[string]string
		wantStatus int
	}{
		{"missing key rejected", "/api/filters", nil, http.StatusUnauthorized},
		{"bearer token accepted", "/api/filters", map[string]string{"Authorization": "Bearer sekret"}, http.StatusOK},
		{"x-api-key accepted", "/api/filters", map[string]string{"X-API-Key": "sekret"}, http.StatusOK},
		{"wrong key rejected", "/api/filters", map[string]string{"X-API-Key": "nope"}, http.StatusUnauthorized},
		{"health stays open", "/health", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestValidateLimit(t *testing.T) {
	if limit, err := validateLimit(""); err != nil || limit != defaultHistoryLimit {
		t.Errorf("validateLimit(\"\") = %d, %v, want default", limit, err)
	}
	if _, err := validateLimit("abc"); err == nil {
		t.Error("validateLimit(abc) accepted garbage")
	}
	if _, err := validateLimit("100000"); err == nil {
		t.Error("validateLimit(100000) accepted out-of-range value")
	}
}
