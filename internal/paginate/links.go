package paginate

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Relationship is the RFC 5988 relation of a navigation link.
type Relationship int

const (
	First Relationship = iota + 1
	Prev
	Next
	Last
)

// String returns the lower-case relation name used in the Link header.
func (r Relationship) String() string {
	switch r {
	case First:
		return "first"
	case Prev:
		return "prev"
	case Next:
		return "next"
	case Last:
		return "last"
	default:
		return fmt.Sprintf("Relationship(%d)", int(r))
	}
}

// Link is a single navigation link.
type Link struct {
	Rel Relationship
	URL *url.URL
}

// String renders the link as `<URL>; rel="REL"`.
func (l Link) String() string {
	return fmt.Sprintf("<%s>; rel=%q", l.URL, l.Rel.String())
}

// Links is a set of navigation links ordered first, prev, next, last.
type Links []Link

// Get returns the link for rel.
func (ls Links) Get(rel Relationship) (Link, bool) {
	for _, l := range ls {
		if l.Rel == rel {
			return l, true
		}
	}
	return Link{}, false
}

// String joins the links with ", " for use as a Link header value.
func (ls Links) String() string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}

// Builder collects navigation links for one page of a result set.
type Builder struct {
	base       *url.URL
	current    int
	perPage    int
	totalPages int
	links      map[Relationship]int
}

// NewBuilder parses base, which must be an absolute URL, and returns a
// Builder for the given page. Query parameters already on base are kept on
// every link; page and per_page are overwritten.
func NewBuilder(base string, currentPage, perPage, totalPages int) (*Builder, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("paginate: parsing base url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("paginate: base url %q is not absolute", base)
	}
	if currentPage < 1 || perPage < 1 || totalPages < 1 {
		return nil, fmt.Errorf("paginate: page %d, per_page %d and total pages %d must be positive", currentPage, perPage, totalPages)
	}
	return &Builder{
		base:       u,
		current:    currentPage,
		perPage:    perPage,
		totalPages: totalPages,
		links:      make(map[Relationship]int, 4),
	}, nil
}

// InsertLink adds the link for rel when it applies to the current page:
// first and last always apply, prev only when there is more than one page
// and the current page is not the first, next only when there is more than
// one page and the current page is not the last.
func (b *Builder) InsertLink(rel Relationship) *Builder {
	switch rel {
	case First:
		b.links[First] = 1
	case Last:
		b.links[Last] = b.totalPages
	case Prev:
		if b.totalPages > 1 && b.current != 1 {
			b.links[Prev] = b.current - 1
		}
	case Next:
		if b.totalPages > 1 && b.current != b.totalPages {
			b.links[Next] = b.current + 1
		}
	}
	return b
}

// InsertAll inserts every relationship that applies.
func (b *Builder) InsertAll() *Builder {
	return b.InsertLink(First).InsertLink(Prev).InsertLink(Next).InsertLink(Last)
}

// Build renders the collected links as absolute URLs.
func (b *Builder) Build() Links {
	links := make(Links, 0, len(b.links))
	for rel, page := range b.links {
		u := *b.base
		q := u.Query()
		q.Set(ParamPage, strconv.Itoa(page))
		q.Set(ParamPerPage, strconv.Itoa(b.perPage))
		u.RawQuery = q.Encode()
		links = append(links, Link{Rel: rel, URL: &u})
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Rel < links[j].Rel })
	return links
}
