package internal

import (
	"net/url"
	"sort"
	"strings"
)

// EncodeQuery serializes values with the bracket convention for array-valued
// parameters: {a: [1, 2], b: "x"} becomes "a[]=1&a[]=2&b=x". Keys are sorted.
// The backend expects this byte-exact, so the brackets are emitted literally
// rather than percent-encoded.
func EncodeQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		vs := values[k]
		key := url.QueryEscape(k)
		if len(vs) > 1 {
			key += "[]"
		}
		for _, v := range vs {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(key)
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(v))
		}
	}
	return sb.String()
}
