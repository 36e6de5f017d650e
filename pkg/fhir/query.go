package fhir

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchParams is an ordered multi-value parameter set. Keys keep their
// insertion order, values keep their per-key order, and a key that ever
// holds more than one value stays a list: merging is append-only and
// never replaces or deduplicates.
type SearchParams struct {
	keys   []string
	values map[string][]string
	lists  map[string]bool
}

// NewSearchParams creates an empty parameter set.
func NewSearchParams() *SearchParams {
	return &SearchParams{
		values: make(map[string][]string),
		lists:  make(map[string]bool),
	}
}

// With appends values for a key and returns the set for chaining. A key
// given more than one value, or given values twice, becomes a list.
func (p *SearchParams) With(key string, values ...string) *SearchParams {
	p.append(key, values)

	return p
}

// WithInt appends an integer value for a key.
func (p *SearchParams) WithInt(key string, value int) *SearchParams {
	return p.With(key, strconv.Itoa(value))
}

// WithBool appends a boolean value for a key.
func (p *SearchParams) WithBool(key string, value bool) *SearchParams {
	return p.With(key, strconv.FormatBool(value))
}

func (p *SearchParams) append(key string, values []string) {
	if len(values) == 0 {
		return
	}

	existing, ok := p.values[key]
	if !ok {
		p.keys = append(p.keys, key)
	}

	if ok || len(values) > 1 {
		p.lists[key] = true
	}

	p.values[key] = append(existing, values...)
}

// Len returns the number of distinct keys.
func (p *SearchParams) Len() int {
	if p == nil {
		return 0
	}

	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *SearchParams) Keys() []string {
	if p == nil {
		return nil
	}

	keys := make([]string, len(p.keys))
	copy(keys, p.keys)

	return keys
}

// Values returns the values stored for a key, in order.
func (p *SearchParams) Values(key string) []string {
	if p == nil {
		return nil
	}

	values := make([]string, len(p.values[key]))
	copy(values, p.values[key])

	return values
}

// Has reports whether the key is present.
func (p *SearchParams) Has(key string) bool {
	if p == nil {
		return false
	}

	_, ok := p.values[key]

	return ok
}

// IsList reports whether the key holds a list rather than a bare
// scalar.
func (p *SearchParams) IsList(key string) bool {
	if p == nil {
		return false
	}

	return p.lists[key] || len(p.values[key]) > 1
}

// Clone returns a deep copy of the set.
func (p *SearchParams) Clone() *SearchParams {
	clone := NewSearchParams()

	if p == nil {
		return clone
	}

	for _, key := range p.keys {
		clone.keys = append(clone.keys, key)
		clone.values[key] = append([]string(nil), p.values[key]...)

		if p.lists[key] {
			clone.lists[key] = true
		}
	}

	return clone
}

// URLValues converts the set to url.Values. Multi-valued keys become
// repeated entries, never comma-joined or bracket-suffixed.
func (p *SearchParams) URLValues() url.Values {
	values := url.Values{}

	if p == nil {
		return values
	}

	for _, key := range p.keys {
		values[key] = append([]string(nil), p.values[key]...)
	}

	return values
}

// Encode serializes the set as a query string with keys in insertion
// order and multi-valued keys repeated.
func (p *SearchParams) Encode() string {
	if p == nil {
		return ""
	}

	var builder strings.Builder

	for _, key := range p.keys {
		for _, value := range p.values[key] {
			if builder.Len() > 0 {
				builder.WriteByte('&')
			}

			builder.WriteString(url.QueryEscape(key))
			builder.WriteByte('=')
			builder.WriteString(url.QueryEscape(value))
		}
	}

	return builder.String()
}

// ParseQuery parses a URL-encoded query string into a parameter set,
// preserving key order left to right. Duplicate keys accumulate into a
// list in the order they appear. An empty string yields an empty set.
func ParseQuery(rawQuery string) (*SearchParams, error) {
	params := NewSearchParams()

	if rawQuery == "" {
		return params, nil
	}

	for pair := range strings.SplitSeq(rawQuery, "&") {
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")

		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			return nil, fmt.Errorf("parsing query key %q: %w", key, err)
		}

		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("parsing query value %q: %w", value, err)
		}

		params.append(decodedKey, []string{decodedValue})
	}

	return params, nil
}

// MergeQuery combines a raw query string with explicit parameters into
// a single set. Query-derived values always precede explicit values for
// the same key, and a key present on both sides becomes a list even
// when both sides carry the same single value. Neither input is
// mutated; a nil params behaves like an empty set.
func MergeQuery(rawQuery string, params *SearchParams) (*SearchParams, error) {
	merged, err := ParseQuery(rawQuery)
	if err != nil {
		return nil, err
	}

	if params == nil {
		return merged, nil
	}

	for _, key := range params.keys {
		merged.append(key, params.values[key])

		if params.lists[key] {
			merged.lists[key] = true
		}
	}

	return merged, nil
}
