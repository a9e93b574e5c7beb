// Package errors carries a structured error across the HTTP boundary: a
// status code plus the wrapped cause.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is the shape every handler failure is coerced into before it is
// written to a response.
type Error struct {
	Status int
	Err    error // The error this wraps
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type transport struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(transport{
		Message: e.Err.Error(),
		Status:  e.Status,
	})
}

func (e *Error) UnmarshalJSON(byts []byte) error {
	t := transport{}
	if err := json.Unmarshal(byts, &t); err != nil {
		return err
	}

	e.Err = errors.New(t.Message)
	e.Status = t.Status
	return nil
}

// E assembles an Error from loose arguments: an int sets the status, a
// string or error sets the cause. Defaults to a 500.
func E(args ...any) *Error {
	ret := &Error{
		Status: http.StatusInternalServerError,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case string:
			ret.Err = errors.New(arg)
		case error:
			ret.Err = arg
		case int:
			ret.Status = arg
		}
	}

	return ret
}
