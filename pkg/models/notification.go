package models

// Media type tags carried by the request manager's webhook payload.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// StatusPending is the quality-status value reported while a request is
// waiting to be picked up by a downstream instance.
const StatusPending = "PENDING"

// ExtraRequestedSeasons names the extra entry whose value lists the
// requested season numbers as a comma-separated string.
const ExtraRequestedSeasons = "Requested Seasons"

// Notification represents a media-request webhook from an Overseerr or
// Jellyseerr style request manager. The handler type guard validates the
// shape before the notification reaches the filter engine; the engine
// itself assumes Media and Request are present.
type Notification struct {
	NotificationType string         `json:"notification_type"`
	Event            string         `json:"event,omitempty"`
	Subject          string         `json:"subject,omitempty"`
	Media            *MediaInfo     `json:"media"`
	Request          map[string]any `json:"request"`
	Extra            []ExtraField   `json:"extra,omitempty"`
}

// MediaInfo carries the media type tag and the two independent
// quality-tracking status fields of the requested media.
type MediaInfo struct {
	MediaType string `json:"media_type"`
	TmdbID    int64  `json:"tmdbId,omitempty"`
	TvdbID    int64  `json:"tvdbId,omitempty"`
	Status    string `json:"status,omitempty"`
	Status4K  string `json:"status4k,omitempty"`
}

// ExtraField is one free-form name/value pair attached to a notification.
type ExtraField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ExtraValue returns the value of the first extra entry with the given name.
func (n *Notification) ExtraValue(name string) (string, bool) {
	for _, e := range n.Extra {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// IsMovie reports whether the notification describes a movie request.
func (n *Notification) IsMovie() bool {
	return n.Media != nil && n.Media.MediaType == MediaTypeMovie
}
