package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the HTTP layer can map it to a status
// code without string matching.
type Kind int

const (
	KindInternal Kind = iota
	KindNotAuthenticated
	KindAuthorization
	KindValidation
	KindNotFound
	KindConflict
)

type Error struct {
	Kind     Kind
	Resource string // set for NotFound
	ID       uint   // set for NotFound
	Field    string // set for Validation
	Reason   string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
	case KindValidation:
		if e.Field != "" {
			return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
		}
		return e.Reason
	default:
		return e.Reason
	}
}

func NotAuthenticated() *Error {
	return &Error{Kind: KindNotAuthenticated, Reason: "not authenticated"}
}

func Authorization(reason string) *Error {
	return &Error{Kind: KindAuthorization, Reason: reason}
}

func Validation(field, reason string) *Error {
	return &Error{Kind: KindValidation, Field: field, Reason: reason}
}

func NotFound(resource string, id uint) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, ID: id}
}

func Conflict(reason string) *Error {
	return &Error{Kind: KindConflict, Reason: reason}
}

// KindOf extracts the Kind of err, or KindInternal when err is not an
// *Error from this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
