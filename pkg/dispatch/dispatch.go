// Package dispatch forwards webhook notifications to downstream instances.
package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"routarr/pkg/config"
	"routarr/pkg/errors"
	"routarr/pkg/models"
)

const defaultTimeout = 30 * time.Second

// Dispatcher forwards a notification to one downstream instance by ID.
type Dispatcher interface {
	Dispatch(ctx context.Context, instanceID string, notification *models.Notification) error
}

// Forwarder is the HTTP Dispatcher. It re-posts the notification as JSON
// to the instance URL, so the downstream sees the same webhook shape the
// request manager sends.
type Forwarder struct {
	instances  map[string]config.Instance
	httpClient *http.Client
}

// NewForwarder creates a Forwarder for the configured instances.
func NewForwarder(instances []config.Instance) *Forwarder {
	byID := make(map[string]config.Instance, len(instances))
	for _, inst := range instances {
		byID[inst.ID] = inst
	}
	return &Forwarder{
		instances:  byID,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Dispatch implements Dispatcher.
func (f *Forwarder) Dispatch(ctx context.Context, instanceID string, notification *models.Notification) error {
	instance, ok := f.instances[instanceID]
	if !ok {
		return fmt.Errorf("%w: %q", errors.ErrUnknownInstance, instanceID)
	}

	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, instance.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if instance.APIKey != "" {
		req.Header.Set("X-Api-Key", instance.APIKey)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: posting to instance %s: %v", errors.ErrDispatchFailed, instanceID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: instance %s returned status %d", errors.ErrDispatchFailed, instanceID, resp.StatusCode)
	}

	log.WithFields(log.Fields{
		"instance": instanceID,
		"subject":  notification.Subject,
	}).Debug("Forwarded notification to instance")

	return nil
}
