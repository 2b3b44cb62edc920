package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError pairs a transport status with the code/message envelope written to
// clients. The wrapped error is only ever logged, never serialized.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func (e *HTTPError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

// abortWithError records the error for the centralized error middleware and
// stops the handler chain.
func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return NewHTTPError(http.StatusInternalServerError, "internal_error", "unexpected server error", err)
}
