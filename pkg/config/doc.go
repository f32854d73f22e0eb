// Package config provides configuration management for the Routarr application.
//
// Configuration is loaded in layers: built-in defaults, then an optional
// YAML config file, then environment variables. The package covers:
//   - HTTP server settings
//   - Request manager (Overseerr/Jellyseerr) and Trakt credentials
//   - Downstream instance definitions the router dispatches to
//   - The ordered filter list that drives routing decisions
//   - Logging level and data directory
//
// The filter list lives in the same user-edited YAML file and is decoded
// through the models package so the plain/object condition shapes and the
// scalar/list apply payloads survive loading. All configuration is
// validated during startup.
package config
