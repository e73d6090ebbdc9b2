// Package catalog runs the read path shared by every list endpoint:
// validate parameters, filter, sort, paginate and build navigation links.
// It operates on a private snapshot of the store and never blocks.
package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/ccdi-federation/ccdi-catalog/internal/filter"
	"github.com/ccdi-federation/ccdi-catalog/internal/models"
	"github.com/ccdi-federation/ccdi-catalog/internal/paginate"
)

// ErrEmptySource means the store held no entities at all. It indicates a
// misconfigured deployment rather than a request error, so Run panics with
// it instead of returning it.
var ErrEmptySource = errors.New("catalog: there must be at least one entity to paginate")

// SortDefault orders entities in place by namespace organization, namespace
// name, then entity name.
func SortDefault[T models.Entity](entities []T) {
	slices.SortStableFunc(entities, func(a, b T) int {
		return models.CompareIdentifiers(a.ID(), b.ID())
	})
}

// Request is a parsed list request.
type Request struct {
	Query filter.Query
	Page  paginate.Page
}

// ParseRequest splits raw query values into pagination parameters and
// filter parameters, and validates both against reg. Invalid pagination
// parameters are reported before unsupported fields.
func ParseRequest[T any](values url.Values, reg *filter.Registry[T], defaultPerPage int) (Request, error) {
	page, err := paginate.ParseParams(values, defaultPerPage)
	if err != nil {
		return Request{}, err
	}
	q := filter.QueryFromValues(values, paginate.ParamPage, paginate.ParamPerPage)
	if err := reg.Validate(q); err != nil {
		return Request{}, err
	}
	return Request{Query: q, Page: page}, nil
}

// ParseQuery parses a raw query string. Malformed pairs are not dropped:
// each one is reported, by its raw key, as an invalid parameter.
func ParseQuery(rawQuery string) (url.Values, error) {
	values, err := url.ParseQuery(rawQuery)
	if err == nil {
		return values, nil
	}

	var bad []string
	for pair := range strings.SplitSeq(rawQuery, "&") {
		if pair == "" {
			continue
		}
		if _, perr := url.ParseQuery(pair); perr != nil {
			key, _, _ := strings.Cut(pair, "=")
			if !slices.Contains(bad, key) {
				bad = append(bad, key)
			}
		}
	}
	return nil, &paginate.InvalidParametersError{Parameters: bad, Reason: "malformed query string: " + err.Error()}
}

// Result is one page of a filtered, sorted collection.
type Result[T any] struct {
	Data  []T
	Info  paginate.PageSetInfo
	Links paginate.Links
}

// Run filters snapshot with req, sorts the survivors by identifier, cuts
// out the requested page and builds links relative to base. snapshot must
// be owned by the caller; it is not modified.
func Run[T models.Entity](snapshot []T, reg *filter.Registry[T], req Request, base string) (Result[T], error) {
	if len(snapshot) == 0 {
		panic(ErrEmptySource)
	}

	matched, err := filter.Filter(snapshot, reg, req.Query)
	if err != nil {
		return Result[T]{}, err
	}
	SortDefault(matched)

	data, info, err := paginate.Paginate(matched, req.Page)
	if err != nil {
		return Result[T]{}, fmt.Errorf("%s: %w", reg.Entity(), err)
	}

	b, err := paginate.NewBuilder(base, info.CurrentPage, info.PerPage, info.TotalPages)
	if err != nil {
		return Result[T]{}, fmt.Errorf("catalog: building links: %w", err)
	}

	return Result[T]{Data: data, Info: info, Links: b.InsertAll().Build()}, nil
}
