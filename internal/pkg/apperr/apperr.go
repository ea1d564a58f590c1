// Package apperr defines the error kinds the service layer surfaces and the
// HTTP boundary maps to status codes. Services never recover from these
// silently; handlers translate them with Write.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Kind classifies an Error for boundary mapping.
type Kind int

const (
	// KindNotFound: an entity id does not exist.
	KindNotFound Kind = iota
	// KindPrecondition: the operation's required state is absent, e.g.
	// publishing with no draft.
	KindPrecondition
	// KindReference: a foreign reference points at a nonexistent row.
	KindReference
	// KindValidation: a malformed or type-mismatched payload.
	KindValidation
)

// Error is a typed service-layer error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Precondition(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPrecondition, Message: fmt.Sprintf(format, args...)}
}

func Reference(format string, args ...interface{}) *Error {
	return &Error{Kind: KindReference, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// Write maps err onto the response envelope: 404 for missing entities and
// dangling references, 409 for precondition failures, 422 for validation.
// Anything untyped is a 500.
func Write(c *gin.Context, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		response.InternalError(c, err)
		return
	}
	switch ae.Kind {
	case KindNotFound, KindReference:
		response.NotFoundMsg(c, ae.Message)
	case KindPrecondition:
		response.Conflict(c, ae.Message)
	case KindValidation:
		response.UnprocessableEntity(c, ae.Message)
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": 0, "code": http.StatusInternalServerError, "message": ae.Message})
	}
}
