// Package handlers provides HTTP request handlers for the Routarr API.
//
// The API includes endpoints for:
//   - Webhook ingestion from the request manager
//   - Dry-run filter evaluation without forwarding
//   - The active filter list and routing decision history
//   - Health checks and Prometheus metrics
//
// All handlers include proper error handling, request validation,
// and JSON response formatting.
package handlers
