package cache

import (
	"net/url"
	"sort"
	"strings"
)

// DefaultPrefix is prepended to every key stored by the redis backend.
const DefaultPrefix = "wander:cache:"

// MakeKey derives a deterministic key from a namespace and parameters.
// Parameters are sorted by name and escaped, so map order never matters.
//
//	MakeKey("suggestions:v2", map[string]string{"query": "paris"}) == "suggestions:v2:query=paris"
func MakeKey(namespace string, params map[string]string) string {
	if len(params) == 0 {
		return namespace
	}

	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(namespace)
	b.WriteByte(':')
	for i, k := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}
