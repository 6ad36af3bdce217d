package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a Failure beyond its HTTP code so callers can branch on
// the exact rule that was broken.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindConstraintViolation Kind = "constraint_violation"
	KindInvalidTransition   Kind = "invalid_transition"
	KindReferentialConflict Kind = "referential_conflict"
	KindDuplicateUser       Kind = "duplicate_user"
	KindLastUser            Kind = "last_user"
	KindIO                  Kind = "io"
	KindUnauthorized        Kind = "unauthorized"
	KindBadRequest          Kind = "bad_request"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Fields carries per-field validation messages for constraint violations.
type Failure struct {
	Code    int               `json:"code"`
	Kind    Kind              `json:"kind,omitempty"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Kind:    KindUnauthorized,
		Message: msg,
	}
}

// Forbidden returns a new Failure with code for forbidden requests.
func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Kind:    KindUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// ConstraintViolation returns a new Failure carrying a field-level error list
// for a broken entity invariant.
func ConstraintViolation(fields map[string]string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindConstraintViolation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// ConstraintViolationf returns a single-field constraint violation.
func ConstraintViolationf(field, msg string) error {
	return ConstraintViolation(map[string]string{field: msg})
}

// InvalidTransition returns a new Failure for a booking status change that the
// state machine forbids.
func InvalidTransition(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindInvalidTransition,
		Message: msg,
	}
}

// ReferentialConflict returns a new Failure for a delete that dependent
// records block.
func ReferentialConflict(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindReferentialConflict,
		Message: msg,
	}
}

// DuplicateUser returns a new Failure for an account name that already exists.
func DuplicateUser(username string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindDuplicateUser,
		Message: "username already exists: " + username,
	}
}

// LastUser returns a new Failure for a removal that would empty the account store.
func LastUser() error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindLastUser,
		Message: "cannot remove the last remaining admin account",
	}
}

// IO returns a new Failure for a filesystem error surfaced by the backup manager.
func IO(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusInternalServerError,
		Kind:    KindIO,
		Message: err.Error(),
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the failure kind of an error interface, or an empty kind.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// GetFields returns the field-level error list of a constraint violation, if any.
func GetFields(err error) map[string]string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Fields
	}

	return nil
}
