// Package metadata retrieves catalog metadata for requested media.
//
// The filter engine matches conditions against an open field mapping; this
// package produces that mapping. Providers:
//   - Overseerr: queries the request manager's own API, exposing the raw
//     movie/tv details object (genres, keywords, contentRatings, ...)
//   - Trakt: looks the item up by TMDB ID and maps genres and
//     certification into the same shape
//   - None: always returns an empty mapping
//
// Provider failures are surfaced as errors; the routing service degrades
// them to an empty mapping so routing still runs and metadata-dependent
// conditions fail naturally.
package metadata
