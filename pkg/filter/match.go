package filter

import (
	"strings"

	"routarr/pkg/models"
)

// MatchValue evaluates a filter value against an arbitrary data value.
//
// The data value is flattened into its scalar leaves first, descending
// into lists and record members; non-leaf structures contribute only
// their descendants. Both sides are then normalized. With required unset
// the match is a case-insensitive substring OR: at least one filter token
// must appear inside at least one leaf token. With required set every
// filter token must exactly equal some leaf token. Matching is
// order-independent and has no partial credit.
func MatchValue(filterValue, dataValue any, required bool) bool {
	dataTokens := Normalize(flatten(dataValue, nil))
	filterTokens := Normalize(filterValue)

	if required {
		for _, ft := range filterTokens {
			if !containsExact(dataTokens, ft) {
				return false
			}
		}
		return true
	}

	for _, ft := range filterTokens {
		for _, dt := range dataTokens {
			if strings.Contains(dt, ft) {
				return true
			}
		}
	}
	return false
}

// flatten collects every scalar leaf reachable from v. Inputs are
// tree-shaped decoded JSON, so plain recursion terminates.
func flatten(v any, leaves []any) []any {
	switch val := v.(type) {
	case nil:
		return leaves
	case []any:
		for _, item := range val {
			leaves = flatten(item, leaves)
		}
		return leaves
	case []string:
		for _, item := range val {
			leaves = append(leaves, item)
		}
		return leaves
	case map[string]any:
		for _, item := range val {
			leaves = flatten(item, leaves)
		}
		return leaves
	default:
		return append(leaves, v)
	}
}

func containsExact(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

// matchCondition applies a condition's declared members to a data value.
// A plain condition is the substring include shorthand. For the object
// form every declared member must pass: require exact-matches all of its
// values, include substring-matches at least one, and exclude fails the
// condition when any of its values substring-matches.
func matchCondition(cond models.Condition, dataValue any) bool {
	if cond.IsPlain {
		return MatchValue(cond.Plain, dataValue, false)
	}
	if cond.Require != nil && !MatchValue(cond.Require, dataValue, true) {
		return false
	}
	if cond.Include != nil && !MatchValue(cond.Include, dataValue, false) {
		return false
	}
	if cond.Exclude != nil && MatchValue(cond.Exclude, dataValue, false) {
		return false
	}
	return true
}
