package server

import (
	"encoding/hex"
	"strings"
)

// queryValues parses a raw query string into the first non-blank value of
// each key. Pairs are split on '&' only, pairs without '=' or with an empty
// value are skipped, and malformed percent escapes are kept literally.
func queryValues(rawQuery string) map[string]string {
	values := make(map[string]string)
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || v == "" {
			continue
		}
		key := unescapeLenient(k)
		if _, seen := values[key]; seen {
			continue
		}
		values[key] = unescapeLenient(v)
	}
	return values
}

// unescapeLenient decodes '+' and valid %XX escapes in s. Anything that is
// not a valid escape is copied through unchanged.
func unescapeLenient(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '+':
			b.WriteByte(' ')
		case '%':
			if i+2 < len(s) {
				if dec, err := hex.DecodeString(s[i+1 : i+3]); err == nil {
					b.Write(dec)
					i += 2
					continue
				}
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
