package normalize

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TitleKey is a canonicalized movie title used as the join and dedup key
// across the catalog, the interaction log, and search results. Upstream
// catalogs disagree on internal identifiers, so titles are the only key
// applied anywhere in this codebase.
type TitleKey string

// Title canonicalizes a movie title into its TitleKey: lower-cased and
// trimmed. Empty or whitespace-only input yields the empty key.
func Title(text string) TitleKey {
	return TitleKey(strings.ToLower(strings.TrimSpace(text)))
}

// ParseRating extracts a numeric rating from the shapes the upstream data
// actually contains: a plain number, a numeric string, or a Mongo
// extended-JSON tagged wrapper like {"$numberDouble": "7.5"}. Any other
// shape returns false; callers supply their own default.
func ParseRating(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
		return 0, false
	case map[string]interface{}:
		return parseTagged(v)
	case primitive.M:
		return parseTagged(map[string]interface{}(v))
	case primitive.D:
		m := make(map[string]interface{}, len(v))
		for _, e := range v {
			m[e.Key] = e.Value
		}
		return parseTagged(m)
	default:
		return 0, false
	}
}

// parseTagged handles extended-JSON numeric wrappers. The driver decodes
// these as map[string]interface{} with the tag as the only key.
func parseTagged(m map[string]interface{}) (float64, bool) {
	for _, tag := range []string{"$numberDouble", "$numberInt", "$numberLong"} {
		if inner, ok := m[tag]; ok {
			switch n := inner.(type) {
			case string:
				if f, err := strconv.ParseFloat(n, 64); err == nil {
					return f, true
				}
			case float64:
				return n, true
			case int32:
				return float64(n), true
			case int64:
				return float64(n), true
			}
			return 0, false
		}
	}
	return 0, false
}

// FormatGenres joins a genre list into the comma-separated form used for
// profiling. A plain string passes through; anything else yields "".
func FormatGenres(genres interface{}) string {
	switch g := genres.(type) {
	case string:
		return g
	case []string:
		return joinNonEmpty(g)
	case []interface{}:
		parts := make([]string, 0, len(g))
		for _, item := range g {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return joinNonEmpty(parts)
	default:
		return ""
	}
}

// SplitGenres is the inverse of FormatGenres: comma-separated string to
// trimmed, non-empty tokens.
func SplitGenres(genres string) []string {
	if genres == "" {
		return nil
	}
	parts := strings.Split(genres, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinNonEmpty(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
