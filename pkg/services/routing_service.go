package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"routarr/pkg/dispatch"
	"routarr/pkg/filter"
	"routarr/pkg/metadata"
	"routarr/pkg/metrics"
	"routarr/pkg/models"
	"routarr/pkg/repository"
)

// RoutingService evaluates incoming notifications against the ordered
// filter list and forwards matches to downstream instances.
type RoutingService struct {
	repo       repository.Repository
	provider   metadata.Provider
	dispatcher dispatch.Dispatcher
	filters    []models.Filter
}

// Evaluation is the outcome of running a notification through the filter
// list, before any forwarding happens.
type Evaluation struct {
	Matched     bool            `json:"matched"`
	FilterIndex int             `json:"filter_index"`
	Instances   []string        `json:"instances,omitempty"`
	PostData    filter.PostData `json:"post_data"`
}

// NewRoutingService creates a new RoutingService.
func NewRoutingService(repo repository.Repository, provider metadata.Provider, dispatcher dispatch.Dispatcher, filters []models.Filter) *RoutingService {
	return &RoutingService{
		repo:       repo,
		provider:   provider,
		dispatcher: dispatcher,
		filters:    filters,
	}
}

// Filters returns the ordered filter list the service routes with.
func (s *RoutingService) Filters() []models.Filter {
	return s.filters
}

// History returns the most recent routing decisions, newest first.
func (s *RoutingService) History(limit int) ([]*models.Decision, error) {
	return s.repo.FindRecentDecisions(limit)
}

// ProcessNotification processes a webhook notification
func (s *RoutingService) ProcessNotification(notification *models.Notification) error {
	return s.ProcessNotificationWithContext(context.Background(), notification)
}

// ProcessNotificationWithContext evaluates a notification, forwards it to
// every instance the winning filter applies and records the decision.
func (s *RoutingService) ProcessNotificationWithContext(ctx context.Context, notification *models.Notification) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	evaluation, err := s.EvaluateWithContext(ctx, notification)
	if err != nil {
		return err
	}

	decision := &models.Decision{
		ReceivedAt:  time.Now(),
		MediaType:   notification.Media.MediaType,
		TmdbID:      notification.Media.TmdbID,
		Subject:     notification.Subject,
		Matched:     evaluation.Matched,
		FilterIndex: evaluation.FilterIndex,
	}

	if !evaluation.Matched {
		metrics.NoMatch.Inc()
		log.WithFields(log.Fields{
			"subject":    notification.Subject,
			"media_type": notification.Media.MediaType,
			"tmdb":       notification.Media.TmdbID,
		}).Info("No filter matched notification")
		s.recordDecision(decision)
		return nil
	}

	decision.Instances = evaluation.Instances
	failed := s.forward(ctx, notification, evaluation.Instances)
	s.recordDecision(decision)

	log.WithFields(log.Fields{
		"subject":   notification.Subject,
		"filter":    evaluation.FilterIndex,
		"instances": evaluation.Instances,
	}).Info("Routed notification")

	if failed > 0 {
		return fmt.Errorf("forwarding to %d of %d instances failed", failed, len(evaluation.Instances))
	}
	return nil
}

// EvaluateWithContext runs a notification through the filter list without
// forwarding anything. Metadata lookup failures degrade to an empty
// mapping so routing still runs on the notification alone.
func (s *RoutingService) EvaluateWithContext(ctx context.Context, notification *models.Notification) (*Evaluation, error) {
	return s.EvaluateWithMetadata(ctx, notification, nil)
}

// EvaluateWithMetadata is EvaluateWithContext with caller-supplied
// metadata. A nil mapping means fetch from the configured provider; the
// dry-run endpoint passes inline metadata here so filter configs can be
// tested against hypothetical catalog data.
func (s *RoutingService) EvaluateWithMetadata(ctx context.Context, notification *models.Notification, data models.Metadata) (*Evaluation, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if notification.Media == nil {
		return nil, fmt.Errorf("notification has no media block")
	}

	if data == nil {
		data = s.fetchMetadata(ctx, notification)
	}

	evaluation := &Evaluation{
		FilterIndex: -1,
		PostData:    filter.ExtractPostData(notification),
	}
	result, matched := filter.Match(notification, data, s.filters)
	if matched {
		evaluation.Matched = true
		evaluation.FilterIndex = result.Index
		evaluation.Instances = result.Apply.IDs()
	}
	return evaluation, nil
}

func (s *RoutingService) fetchMetadata(ctx context.Context, notification *models.Notification) models.Metadata {
	data, err := s.provider.Fetch(ctx, notification.Media.MediaType, notification.Media.TmdbID)
	if err != nil {
		metrics.MetadataErrors.Inc()
		log.WithError(err).WithFields(log.Fields{
			"media_type": notification.Media.MediaType,
			"tmdb":       notification.Media.TmdbID,
		}).Error("Failed to fetch metadata, routing on notification fields only")
		return models.Metadata{}
	}
	return data
}

func (s *RoutingService) forward(ctx context.Context, notification *models.Notification, instances []string) int {
	var failed int
	for _, instanceID := range instances {
		if err := s.dispatcher.Dispatch(ctx, instanceID, notification); err != nil {
			failed++
			metrics.DispatchErrors.WithLabelValues(instanceID).Inc()
			log.WithError(err).WithField("instance", instanceID).Error("Failed to forward notification")
			continue
		}
		metrics.Routed.WithLabelValues(instanceID).Inc()
	}
	return failed
}

func (s *RoutingService) recordDecision(decision *models.Decision) {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveDecision(decision); err != nil {
		log.WithError(err).Error("Failed to record routing decision")
	}
}
