package filter

import "routarr/pkg/models"

// MatchKeywords evaluates a condition against a keyword list. Keywords
// are records exposing a name member; the extracted names are the values
// matched. An empty keyword list can satisfy only an exclude member:
// require, include and the plain shorthand have nothing to find, while
// exclude has nothing to reject.
func MatchKeywords(keywords any, cond models.Condition) bool {
	return matchCondition(cond, recordNames(keywords))
}

// recordNames extracts the name member of each record in a list,
// preserving order and skipping records without one.
func recordNames(v any) []any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	names := make([]any, 0, len(list))
	for _, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := record["name"]; ok {
			names = append(names, name)
		}
	}
	return names
}
