package models

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// Condition keys handled specially by the filter engine. Every other key
// is resolved as a generic field lookup.
const (
	ConditionMaxSeasons     = "max_seasons"
	ConditionKeywords       = "keywords"
	ConditionContentRatings = "contentRatings"
)

// Filter is one ordered routing rule: a media-type discriminator, an
// optional 4k discriminator, a set of per-field conditions and the payload
// to return when everything matches. The filter list is a user-controlled
// priority order; the engine returns the payload of the first match.
type Filter struct {
	MediaType  string               `json:"media_type"`
	Is4K       *bool                `json:"is_4k,omitempty"`
	Conditions map[string]Condition `json:"conditions,omitempty"`
	Apply      Apply                `json:"apply"`
}

// Validate checks that the filter carries the members the engine requires.
func (f *Filter) Validate() error {
	if f.MediaType == "" {
		return fmt.Errorf("filter is missing media_type")
	}
	if len(f.Apply.IDs()) == 0 {
		return fmt.Errorf("filter for %q has an empty apply payload", f.MediaType)
	}
	return nil
}

// Condition is the per-field matching rule inside a filter: either a plain
// value (shorthand for a case-insensitive substring include) or an object
// carrying any of the require/include/exclude members. The shape is
// resolved once, at decode time.
type Condition struct {
	// Plain holds the shorthand form's value; only meaningful when IsPlain is set.
	Plain   any
	IsPlain bool

	// Require lists values that must all exact-match.
	Require any
	// Include lists values of which at least one must substring-match.
	Include any
	// Exclude lists values of which none may substring-match.
	Exclude any
}

// PlainCondition builds the shorthand form of a condition.
func PlainCondition(v any) Condition {
	return Condition{Plain: v, IsPlain: true}
}

// UnmarshalJSON dispatches between the plain and object condition shapes.
// Scalars and arrays are the shorthand include form; objects contribute
// their require/include/exclude members, absent members imposing no
// constraint.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding condition: %w", err)
	}
	if obj, ok := raw.(map[string]any); ok {
		c.Require = obj["require"]
		c.Include = obj["include"]
		c.Exclude = obj["exclude"]
		return nil
	}
	c.Plain = raw
	c.IsPlain = true
	return nil
}

// MarshalJSON renders the condition back in the shape it was declared in.
func (c Condition) MarshalJSON() ([]byte, error) {
	if c.IsPlain {
		return json.Marshal(c.Plain)
	}
	obj := make(map[string]any, 3)
	if c.Require != nil {
		obj["require"] = c.Require
	}
	if c.Include != nil {
		obj["include"] = c.Include
	}
	if c.Exclude != nil {
		obj["exclude"] = c.Exclude
	}
	return json.Marshal(obj)
}

// Apply is a filter's routing payload: one downstream instance identifier
// or an ordered list of them. The payload is opaque to the engine and
// round-trips verbatim, keeping the scalar/list distinction of the
// configuration file.
type Apply struct {
	ids  []string
	list bool
}

// ApplyOne builds a scalar payload.
func ApplyOne(id string) Apply {
	return Apply{ids: []string{id}}
}

// ApplyList builds a list payload.
func ApplyList(ids ...string) Apply {
	return Apply{ids: ids, list: true}
}

// IDs returns the instance identifiers in declaration order.
func (a Apply) IDs() []string {
	return a.ids
}

// IsList reports whether the payload was declared as a list.
func (a Apply) IsList() bool {
	return a.list
}

// UnmarshalJSON accepts a single identifier or an array of identifiers.
// Numeric identifiers are kept in their literal string form.
func (a *Apply) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding apply payload: %w", err)
	}
	switch v := raw.(type) {
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			id, err := applyID(item)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		*a = Apply{ids: ids, list: true}
		return nil
	default:
		id, err := applyID(raw)
		if err != nil {
			return err
		}
		*a = Apply{ids: []string{id}}
		return nil
	}
}

// MarshalJSON renders the payload verbatim: a scalar stays a scalar, a
// list stays a list.
func (a Apply) MarshalJSON() ([]byte, error) {
	if !a.list && len(a.ids) == 1 {
		return json.Marshal(a.ids[0])
	}
	if a.ids == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(a.ids)
}

func applyID(v any) (string, error) {
	switch id := v.(type) {
	case string:
		return id, nil
	case float64:
		return trimFloat(id), nil
	default:
		return "", fmt.Errorf("apply payload entries must be strings or numbers, got %T", v)
	}
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
