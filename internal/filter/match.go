package filter

import "strings"

// Matches decides whether an entity with the extracted values survives a
// filter on query. An absent field (ok == false) never matches, not even an
// empty query.
//
// MatchSearch lower-cases rune by rune with strings.ToLower. That is not full
// Unicode case folding: pairs such as "ß"/"SS" or the final sigma do not
// compare equal.
func Matches(values []string, ok bool, query string, mode MatchMode) bool {
	if !ok {
		return false
	}
	switch mode {
	case MatchExact:
		for _, v := range values {
			if v == query {
				return true
			}
		}
	case MatchSearch:
		q := strings.ToLower(query)
		for _, v := range values {
			if strings.Contains(strings.ToLower(v), q) {
				return true
			}
		}
	case MatchContains:
		for _, v := range values {
			if strings.Contains(v, query) {
				return true
			}
		}
	}
	return false
}
