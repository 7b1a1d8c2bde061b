// Package remoterr translates failures surfaced by the authority connection
// into a small typed taxonomy that the rest of authgate (and its callers)
// match on, instead of leaking transport details everywhere.
package remoterr

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies a translated error.
type Kind int

const (
	// KindGeneric covers any transport failure without a dedicated
	// mapping; Status carries the transport code through opaquely.
	KindGeneric Kind = iota
	KindNotFound
	KindForbidden
	KindInvalidArgument
	// KindField is a caller-input problem naming a specific field.
	KindField
)

// Error is a translated remote failure. Only populated attributes are
// emitted by Map, so it can travel to a caller as a flat payload.
type Error struct {
	Kind   Kind
	Detail string
	Status int
	// Code is the transport status name, e.g. "NotFound".
	Code string
	// Field is set only for KindField.
	Field string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("remote error: %s (field %q)", e.Detail, e.Field)
	}
	return fmt.Sprintf("remote error: %s", e.Detail)
}

// Map returns the error as a flat mapping of its populated attributes.
func (e *Error) Map() map[string]any {
	m := make(map[string]any, 4)
	if e.Detail != "" {
		m["detail"] = e.Detail
	}
	if e.Status != 0 {
		m["status"] = e.Status
	}
	if e.Code != "" {
		m["code"] = e.Code
	}
	if e.Field != "" {
		m["field_name"] = e.Field
	}
	return m
}

var quotedField = regexp.MustCompile(`"([^"]+)"`)

// Translate converts any error coming out of an authority call into an
// *Error. Transport status errors map per code; non-status errors whose
// message names a quoted field become field errors; anything else stays
// generic. Already-translated errors pass through unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var te *Error
	if errors.As(err, &te) {
		return te
	}

	if st, ok := status.FromError(err); ok {
		return fromStatus(st)
	}

	if m := quotedField.FindStringSubmatch(err.Error()); m != nil {
		return &Error{
			Kind:   KindField,
			Detail: err.Error(),
			Status: http.StatusBadRequest,
			Field:  m[1],
		}
	}

	return &Error{Kind: KindGeneric, Detail: err.Error()}
}

func fromStatus(st *status.Status) *Error {
	e := &Error{Detail: st.Message(), Code: st.Code().String()}

	switch st.Code() {
	case codes.NotFound:
		e.Kind = KindNotFound
		e.Status = http.StatusNotFound
	case codes.Unauthenticated, codes.PermissionDenied:
		e.Kind = KindForbidden
		e.Status = http.StatusForbidden
	case codes.InvalidArgument, codes.OutOfRange:
		e.Kind = KindInvalidArgument
		e.Status = http.StatusBadRequest
	default:
		e.Kind = KindGeneric
		e.Status = int(st.Code())
	}

	return e
}

func is(err error, k Kind) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == k
}

// IsNotFound reports whether err translates to a missing remote record.
func IsNotFound(err error) bool { return is(err, KindNotFound) }

// IsForbidden reports whether err translates to an authentication or
// permission failure.
func IsForbidden(err error) bool { return is(err, KindForbidden) }

// IsInvalidArgument reports whether err translates to a caller-input
// problem (with or without a named field).
func IsInvalidArgument(err error) bool {
	return is(err, KindInvalidArgument) || is(err, KindField)
}
