package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalize coerces a scalar or a list of scalars into an ordered list of
// lower-cased string tokens. A scalar becomes a one-element list, a list
// is mapped element-wise, element order is preserved and an empty list
// stays empty. Every scalar has a string form, so there are no error
// cases; normalizing an already-normalized list returns it unchanged.
func Normalize(v any) []string {
	switch list := v.(type) {
	case nil:
		return nil
	case []any:
		tokens := make([]string, 0, len(list))
		for _, item := range list {
			tokens = append(tokens, token(item))
		}
		return tokens
	case []string:
		tokens := make([]string, 0, len(list))
		for _, item := range list {
			tokens = append(tokens, strings.ToLower(item))
		}
		return tokens
	default:
		return []string{token(v)}
	}
}

// token renders one scalar in its canonical lower-cased string form.
func token(v any) string {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return strings.ToLower(fmt.Sprintf("%v", v))
	}
}
