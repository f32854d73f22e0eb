package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"routarr/pkg/models"
)

const defaultHistoryLimit = 50

var ErrInvalidLimit = errors.New("invalid limit")

// validateNotification checks the fields routing cannot work without.
// Everything else in the payload is passed through untouched.
func validateNotification(notification *models.Notification) error {
	if notification.Media == nil {
		return fmt.Errorf("media block is required")
	}

	switch notification.Media.MediaType {
	case models.MediaTypeMovie, models.MediaTypeTV:
	case "":
		return fmt.Errorf("media_type is required")
	default:
		return fmt.Errorf("unknown media_type %q", notification.Media.MediaType)
	}

	if notification.Media.TmdbID < 0 {
		return fmt.Errorf("tmdbId must not be negative")
	}

	return nil
}

// validateLimit parses the history limit query parameter.
func validateLimit(limitStr string) (int, error) {
	if limitStr == "" {
		return defaultHistoryLimit, nil
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 0, ErrInvalidLimit
	}

	// Reasonable upper bound check
	if limit > 1000 {
		return 0, ErrInvalidLimit
	}

	return limit, nil
}
