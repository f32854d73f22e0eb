package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"routarr/pkg/metrics"
	"routarr/pkg/models"
	"routarr/pkg/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	routingService *services.RoutingService
	apiKey         string
}

func NewHandler(routingService *services.RoutingService, apiKey string) *Handler {
	return &Handler{
		routingService: routingService,
		apiKey:         apiKey,
	}
}

// Router assembles the HTTP routes. The webhook and API endpoints sit
// behind API key auth when a key is configured; health and metrics stay
// open for probes and scrapers.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware)
		r.Post("/webhook", h.handleWebhook)
		r.Post("/api/match", h.handleMatch)
		r.Get("/api/filters", h.handleFilters)
		r.Get("/api/history", h.handleHistory)
	})

	return r
}

// ResponseError represents an error response
type ResponseError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ResponseSuccess represents a success response
type ResponseSuccess struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (h *Handler) writeJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("Failed to encode JSON response")
	}
}

func (h *Handler) writeErrorResponse(w http.ResponseWriter, status int, message, details string) {
	response := ResponseError{
		Error:   message,
		Message: details,
	}
	h.writeJSONResponse(w, status, response)
}

func (h *Handler) writeSuccessResponse(w http.ResponseWriter, status int, message string, data interface{}) {
	response := ResponseSuccess{
		Message: message,
		Data:    data,
	}
	h.writeJSONResponse(w, status, response)
}

// handleWebhook handles webhook notifications from the request manager.
// Processing happens asynchronously; the webhook sender only needs an ack.
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var notification models.Notification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON", fmt.Sprintf("Failed to parse request body: %v", err))
		return
	}
	defer r.Body.Close()

	if err := validateNotification(&notification); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid notification", err.Error())
		return
	}

	metrics.WebhooksReceived.Inc()

	go func() {
		if err := h.routingService.ProcessNotification(&notification); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"subject":    notification.Subject,
				"media_type": notification.Media.MediaType,
				"tmdb":       notification.Media.TmdbID,
			}).Error("Failed to process notification")
		}
	}()

	h.writeSuccessResponse(w, http.StatusAccepted, "Notification received and processing started", nil)
}

// MatchRequest is the dry-run request body. Metadata is optional; when
// present the evaluation uses it instead of querying the provider, so
// filter configs can be tested against hypothetical catalog data.
type MatchRequest struct {
	Notification *models.Notification `json:"notification"`
	Metadata     models.Metadata      `json:"metadata,omitempty"`
}

// handleMatch evaluates a notification against the filter list without
// forwarding anything. The body is either a MatchRequest or a bare
// notification payload.
func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request", fmt.Sprintf("Failed to read request body: %v", err))
		return
	}
	defer r.Body.Close()

	var request MatchRequest
	if err := json.Unmarshal(body, &request); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON", fmt.Sprintf("Failed to parse request body: %v", err))
		return
	}
	if request.Notification == nil {
		var notification models.Notification
		if err := json.Unmarshal(body, &notification); err != nil {
			h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON", fmt.Sprintf("Failed to parse request body: %v", err))
			return
		}
		request.Notification = &notification
	}

	if err := validateNotification(request.Notification); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid notification", err.Error())
		return
	}

	evaluation, err := h.routingService.EvaluateWithMetadata(r.Context(), request.Notification, request.Metadata)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to evaluate notification", err.Error())
		return
	}

	h.writeSuccessResponse(w, http.StatusOK, "Notification evaluated", evaluation)
}

// handleFilters returns the active filter list in order.
func (h *Handler) handleFilters(w http.ResponseWriter, r *http.Request) {
	filters := h.routingService.Filters()

	data := map[string]interface{}{
		"count":   len(filters),
		"filters": filters,
	}

	h.writeSuccessResponse(w, http.StatusOK, "Filters retrieved successfully", data)
}

// handleHistory returns recent routing decisions, newest first.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := validateLimit(r.URL.Query().Get("limit"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid parameter", "limit must be a positive integer")
		return
	}

	decisions, err := h.routingService.History(limit)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to get history", err.Error())
		return
	}

	data := map[string]interface{}{
		"count":     len(decisions),
		"decisions": decisions,
	}

	h.writeSuccessResponse(w, http.StatusOK, "History retrieved successfully", data)
}

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	h.writeSuccessResponse(w, http.StatusOK, "Service is healthy", health)
}
