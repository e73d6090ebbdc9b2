package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ccdi-federation/ccdi-catalog/internal/filter"
	"github.com/ccdi-federation/ccdi-catalog/internal/metrics"
	"github.com/ccdi-federation/ccdi-catalog/internal/paginate"
)

// Error kinds reported in the "kind" field of an error response.
const (
	KindInvalidParameters = "InvalidParameters"
	KindUnsupportedField  = "UnsupportedField"
	KindEmptyPage         = "EmptyPage"
	KindNotFound          = "NotFound"
	KindInvalidRoute      = "InvalidRoute"
)

// Kind is one entry of an error response.
type Kind struct {
	Kind       string   `json:"kind"`
	Parameters []string `json:"parameters,omitempty"`
	Field      string   `json:"field,omitempty"`
	Entity     string   `json:"entity,omitempty"`
	Method     string   `json:"method,omitempty"`
	Route      string   `json:"route,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Message    string   `json:"message"`
}

// Errors is the body of every error response.
type Errors struct {
	Errors []Kind `json:"errors"`
}

func invalidParameters(params []string, reason string) Kind {
	quoted := make([]string, len(params))
	for i, p := range params {
		quoted[i] = "'" + p + "'"
	}
	msg := "Invalid parameters: " + reason
	if len(params) == 1 {
		msg = fmt.Sprintf("Invalid value for parameter %s: %s", quoted[0], reason)
	} else if len(params) > 1 {
		msg = fmt.Sprintf("Invalid value for parameters %s: %s", strings.Join(quoted, " and "), reason)
	}
	return Kind{Kind: KindInvalidParameters, Parameters: params, Reason: reason, Message: msg}
}

func unsupportedField(field, reason string) Kind {
	return Kind{
		Kind:    KindUnsupportedField,
		Field:   field,
		Reason:  reason,
		Message: fmt.Sprintf("Field '%s' is not supported: %s", field, strings.ToLower(reason)),
	}
}

func emptyPage(entity string) Kind {
	reason := fmt.Sprintf("no %ss selected", entity)
	return Kind{
		Kind:       KindEmptyPage,
		Parameters: []string{paginate.ParamPage, paginate.ParamPerPage},
		Entity:     entity,
		Reason:     reason,
		Message:    fmt.Sprintf("No entities on the requested page: %s", reason),
	}
}

func notFound(entity string) Kind {
	return Kind{Kind: KindNotFound, Entity: entity, Message: entity + " not found."}
}

func invalidRoute(method, route string) Kind {
	return Kind{
		Kind:    KindInvalidRoute,
		Method:  method,
		Route:   route,
		Message: fmt.Sprintf("Invalid route: %s %s.", method, route),
	}
}

// catalogErrors maps an error from the catalog pipeline to a status code and
// error kinds. ok is false for errors that are not the caller's fault.
func catalogErrors(err error, entity string) (status int, kinds []Kind, ok bool) {
	var invalid *paginate.InvalidParametersError
	var unsupported *filter.UnsupportedFieldError

	switch {
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity, []Kind{invalidParameters(invalid.Parameters, invalid.Reason)}, true
	case errors.As(err, &unsupported):
		kinds = make([]Kind, 0, len(unsupported.Fields))
		for _, f := range unsupported.Fields {
			kinds = append(kinds, unsupportedField(f, fmt.Sprintf("This field is not present for %ss.", unsupported.Entity)))
		}
		return http.StatusUnprocessableEntity, kinds, true
	case errors.Is(err, paginate.ErrEmptyPage):
		return http.StatusUnprocessableEntity, []Kind{emptyPage(entity)}, true
	default:
		return http.StatusInternalServerError, nil, false
	}
}

// writeErrors writes an error response and counts each kind.
func (s *Server) writeErrors(w http.ResponseWriter, status int, kinds ...Kind) {
	for i := range kinds {
		metrics.IncError(kinds[i].Kind)
	}
	s.writeJSON(w, status, Errors{Errors: kinds})
}
