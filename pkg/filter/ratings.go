package filter

import "routarr/pkg/models"

// MatchContentRatings evaluates a condition against a content-rating
// container holding a results list of rating records. A missing container
// or an empty results list fails unconditionally regardless of the
// condition shape: unlike the keyword matcher, an absent rating list does
// not vacuously satisfy an exclude member. Otherwise the rating members
// are matched with the same require/include/exclude semantics as
// MatchKeywords.
func MatchContentRatings(container any, cond models.Condition) bool {
	ratings := ratingValues(container)
	if len(ratings) == 0 {
		return false
	}
	return matchCondition(cond, ratings)
}

// ratingValues extracts the rating member of each record in the
// container's results list.
func ratingValues(container any) []any {
	record, ok := container.(map[string]any)
	if !ok {
		return nil
	}
	list, ok := record["results"].([]any)
	if !ok {
		return nil
	}
	ratings := make([]any, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if rating, ok := entry["rating"]; ok {
			ratings = append(ratings, rating)
		}
	}
	return ratings
}
