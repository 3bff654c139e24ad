package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors carrying the same code and message, so wrapped copies of a
// sentinel still satisfy errors.Is against the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of the sentinel carrying err as its cause.
func Wrap(sentinel *Error, err error) *Error {
	return New(sentinel.Code, sentinel.Message, err)
}

// Common error types
var (
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// Store error types
var (
	ErrStoreUnavailable = New(http.StatusServiceUnavailable, "Document store unavailable", nil)
	ErrStoreOperation   = New(http.StatusInternalServerError, "Document store operation failed", nil)
)

// Validation error types
var (
	ErrValidation = New(http.StatusInternalServerError, "Validation error", nil)
)

// Serialization error types
var (
	ErrSerialization = New(http.StatusInternalServerError, "Document serialization error", nil)
)

// As converts any error into an *Error, falling back to an internal server
// error that wraps it.
func As(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternalServer, err)
}

// ErrorMiddleware renders the last error attached to the gin context.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := As(err)
		if appErr.Code >= http.StatusInternalServerError {
			zap.L().Error("Request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", appErr.Code),
				zap.Error(err),
			)
		}

		c.JSON(appErr.Code, appErr)
		c.Abort()
	}
}
