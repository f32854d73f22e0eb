package filter

import (
	"strconv"
	"strings"

	"routarr/pkg/models"
)

// Result describes the first filter that matched during a pass.
type Result struct {
	// Apply is the matched filter's payload, returned verbatim.
	Apply models.Apply `json:"apply"`
	// Index is the position of the matched filter in the list, -1 on no match.
	Index int `json:"index"`
}

// Match walks the ordered filter list and returns the payload of the
// first filter whose gates and conditions all hold. The boolean is false
// when no filter matches; that is a defined outcome, not an error. The
// walk is a pure function of (notification, metadata, filter list): it
// retains nothing and mutates none of its inputs, so callers may invoke
// it concurrently without coordination.
func Match(n *models.Notification, data models.Metadata, filters []models.Filter) (Result, bool) {
	post := ExtractPostData(n)
	for i := range filters {
		if matchFilter(n, data, &filters[i], post) {
			return Result{Apply: filters[i].Apply, Index: i}, true
		}
	}
	return Result{Index: -1}, false
}

func matchFilter(n *models.Notification, data models.Metadata, f *models.Filter, post PostData) bool {
	if n == nil || n.Media == nil || f.MediaType != n.Media.MediaType {
		return false
	}
	if f.Is4K != nil && !match4K(n.Media, *f.Is4K) {
		return false
	}
	// Absent or empty conditions make the filter a catch-all.
	for key, cond := range f.Conditions {
		if !matchConditionKey(n, data, post, key, cond) {
			return false
		}
	}
	return true
}

// match4K applies the 4k discriminator against the two quality-status
// flags. A request with both flags pending is ambiguous and matches
// neither polarity.
func match4K(media *models.MediaInfo, want4K bool) bool {
	standardPending := media.Status == models.StatusPending
	fourKPending := media.Status4K == models.StatusPending
	if want4K {
		return fourKPending && !standardPending
	}
	return standardPending && !fourKPending
}

func matchConditionKey(n *models.Notification, data models.Metadata, post PostData, key string, cond models.Condition) bool {
	switch key {
	case models.ConditionMaxSeasons:
		return matchMaxSeasons(post, cond)
	case models.ConditionKeywords:
		keywords, ok := data[models.MetadataKeywords]
		if !ok {
			return false
		}
		return MatchKeywords(keywords, cond)
	case models.ConditionContentRatings:
		return MatchContentRatings(data[models.MetadataContentRatings], cond)
	default:
		value, ok := lookupField(data, n, key)
		if !ok {
			// A missing field never satisfies a condition, exclude included.
			return false
		}
		return matchCondition(cond, value)
	}
}

// lookupField resolves a generic condition key through the ordered lookup
// chain: metadata first, then the notification's request record.
func lookupField(data models.Metadata, n *models.Notification, key string) (any, bool) {
	if value, ok := data[key]; ok {
		return value, true
	}
	if value, ok := n.Request[key]; ok {
		return value, true
	}
	return nil, false
}

// matchMaxSeasons passes when a requested-seasons entry exists and the
// season count does not exceed the limit. A missing entry fails the key,
// as does a limit that cannot be read as a number.
func matchMaxSeasons(post PostData, cond models.Condition) bool {
	if !post.SeasonsPresent {
		return false
	}
	limit, ok := seasonLimit(cond)
	if !ok {
		return false
	}
	return float64(len(post.Seasons)) <= limit
}

func seasonLimit(cond models.Condition) (float64, bool) {
	if !cond.IsPlain {
		return 0, false
	}
	switch v := cond.Plain.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		limit, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return limit, true
	default:
		return 0, false
	}
}
