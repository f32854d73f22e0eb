// Package models defines the core data structures used throughout the Routarr application.
//
// It includes:
//   - Notification: Represents an inbound media-request webhook from the request manager
//   - Filter: Represents one ordered routing rule with its conditions and payload
//   - Condition: Represents a per-field matching rule (plain value or require/include/exclude object)
//   - Metadata: Represents the open field mapping supplied by a metadata provider
//   - Decision: Represents a persisted routing-history record
//
// All models include appropriate serialization tags for database storage
// and JSON API responses.
package models
