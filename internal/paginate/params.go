package paginate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names.
const (
	ParamPage    = "page"
	ParamPerPage = "per_page"
)

// InvalidParametersError is returned when page or per_page is not a positive integer.
type InvalidParametersError struct {
	Parameters []string
	Reason     string
}

func (e *InvalidParametersError) Error() string {
	quoted := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		quoted[i] = "'" + p + "'"
	}
	noun := "parameter"
	if len(quoted) > 1 {
		noun = "parameters"
	}
	return fmt.Sprintf("invalid value for %s %s: %s", noun, strings.Join(quoted, " and "), e.Reason)
}

// ParseParams reads page and per_page from values, falling back to
// DefaultPage and defaultPerPage when they are absent. Both must parse as
// positive integers; every offending parameter is reported.
func ParseParams(values url.Values, defaultPerPage int) (Page, error) {
	page := Page{Index: DefaultPage, Size: defaultPerPage}
	var bad []string

	if raw, ok := lookup(values, ParamPage); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			bad = append(bad, ParamPage)
		}
		page.Index = n
	}
	if raw, ok := lookup(values, ParamPerPage); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			bad = append(bad, ParamPerPage)
		}
		page.Size = n
	}

	if len(bad) > 0 {
		return Page{}, &InvalidParametersError{Parameters: bad, Reason: "must be a positive integer"}
	}
	return page, page.Validate()
}

func lookup(values url.Values, key string) (string, bool) {
	vals, ok := values[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return strings.TrimSpace(vals[0]), true
}
