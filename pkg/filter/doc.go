// Package filter implements the condition-matching and filter-resolution
// engine at the core of Routarr.
//
// It provides:
//   - Value normalization: coercing scalars and lists into lower-cased string tokens
//   - Value matching: substring-OR and exact-AND comparison over flattened data values
//   - Keyword and content-rating matching with require/include/exclude semantics
//   - Post-data extraction: media type and requested seasons from a notification
//   - The filter engine: an ordered, first-match-wins walk over the filter list
//
// Everything in this package is a pure, synchronous function of its
// arguments: no I/O, no retained state, no mutation of inputs. Malformed
// condition values degrade to a non-match instead of raising errors.
package filter
