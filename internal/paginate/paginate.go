// Package paginate slices a filtered, sorted collection into fixed-size,
// 1-indexed pages and renders RFC 5988 navigation links for them.
package paginate

import (
	"errors"
	"fmt"
)

// Defaults used when the caller omits page or per_page.
const (
	DefaultPage    = 1
	DefaultPerPage = 100
)

// ErrEmptyPage is returned when the requested page lies beyond the last
// page of the result set, including page 1 of an empty result.
var ErrEmptyPage = errors.New("no entities on the requested page")

// Page selects one page of a result set. Index is 1-based.
type Page struct {
	Index int
	Size  int
}

// Validate checks that both index and size are positive.
func (p Page) Validate() error {
	var bad []string
	if p.Index < 1 {
		bad = append(bad, ParamPage)
	}
	if p.Size < 1 {
		bad = append(bad, ParamPerPage)
	}
	if len(bad) > 0 {
		return &InvalidParametersError{Parameters: bad, Reason: "must be a positive integer"}
	}
	return nil
}

// PageSetInfo describes where a page sits within its result set.
type PageSetInfo struct {
	CurrentPage   int `json:"current_page"`
	TotalPages    int `json:"total_pages"`
	PerPage       int `json:"per_page"`
	TotalEntities int `json:"total_entities"`
}

// TotalPages returns ceil(total / perPage).
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	pages := total / perPage
	if total%perPage > 0 {
		pages++
	}
	return pages
}

// Paginate returns the page.Index-th chunk of page.Size entities. The
// returned slice aliases entities.
func Paginate[T any](entities []T, page Page) ([]T, PageSetInfo, error) {
	if err := page.Validate(); err != nil {
		return nil, PageSetInfo{}, err
	}

	total := TotalPages(len(entities), page.Size)
	if page.Index > total {
		return nil, PageSetInfo{}, fmt.Errorf("page %d of %d: %w", page.Index, total, ErrEmptyPage)
	}

	start := (page.Index - 1) * page.Size
	end := min(start+page.Size, len(entities))

	return entities[start:end], PageSetInfo{
		CurrentPage:   page.Index,
		TotalPages:    total,
		PerPage:       page.Size,
		TotalEntities: len(entities),
	}, nil
}
