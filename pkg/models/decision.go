package models

import "time"

// Decision is one persisted routing outcome, kept so operators can see
// where recent requests went. It records the result of a matching pass,
// never its inputs; the notification itself is not retained.
type Decision struct {
	ID          string    `json:"id" boltholdKey:"ID"`
	ReceivedAt  time.Time `json:"received_at" boltholdIndex:"ReceivedAt"`
	MediaType   string    `json:"media_type"`
	TmdbID      int64     `json:"tmdb_id,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Matched     bool      `json:"matched"`
	FilterIndex int       `json:"filter_index"`
	Instances   []string  `json:"instances,omitempty"`
}
