// Package services provides the core business logic for the Routarr application.
//
// The routing service ties the pipeline together:
//   - Metadata retrieval: enriching notifications through the configured provider
//   - Filter evaluation: running the ordered filter list over the request
//   - Dispatch: forwarding the webhook to every instance the winning filter applies
//   - Decision history: recording each outcome for the history API
//
// All services support context-based cancellation for graceful shutdown.
package services
