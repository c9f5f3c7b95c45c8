package common

import (
	"fmt"
	"net/http"
)

// UserVisibleError carries a message that is safe to show to an API client,
// along with the HTTP status to respond with. Anything else that reaches the
// error handler is logged and collapsed to a generic 500.
type UserVisibleError struct {
	HttpCode int
	Message  string
}

func (e *UserVisibleError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.HttpCode, e.Message)
}

func NewUserVisibleError(httpCode int, message string) *UserVisibleError {
	return &UserVisibleError{
		HttpCode: httpCode,
		Message:  message,
	}
}

// NewLookupFailedError is the generic response for any store failure. The
// underlying SQL error is logged by the caller, never sent to the client.
func NewLookupFailedError() *UserVisibleError {
	return NewUserVisibleError(http.StatusInternalServerError, "lookup failed")
}

func WrapErrorForResponse(err error, message string) error {
	if e, ok := err.(*UserVisibleError); ok {
		return &UserVisibleError{
			HttpCode: e.HttpCode,
			Message:  fmt.Sprintf("%s: %s", message, e.Message),
		}
	}
	return err
}
