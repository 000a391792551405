package errors

import (
	"fmt"
)

// UserError is the interface an error has to comply to to be consumable by an
// external client. It carries the HTTP status to respond with along with a
// stable error code and a human readable message.
type UserError interface {
	error
	Status() int
	Code() string
	Message() string
	Cause() error
}

// NewUserError wraps the error as a UserError with the specified status, code
// and message.
func NewUserError(
	err error,
	status int,
	code string,
	message string,
) UserError {
	e := &wrap{
		errStatus:  status,
		errCode:    code,
		errMessage: message,
		previous:   err,
	}
	e.setLocation(1)
	return e
}

// NewUserErrorf wraps the error as a UserError with the specified status,
// code and formatted message.
func NewUserErrorf(
	err error,
	status int,
	code string,
	format string,
	args ...interface{},
) error {
	e := &wrap{
		errStatus:  status,
		errCode:    code,
		errMessage: fmt.Sprintf(format, args...),
		previous:   err,
	}
	e.setLocation(1)
	return e
}

// ExtractUserError extracts the most recent UserError attached to the error
// if any, returning nil otherwise.
func ExtractUserError(err error) UserError {
	for err != nil {
		e, ok := err.(*wrap)
		if !ok {
			if u, ok := err.(UserError); ok {
				return u
			}
			return nil
		}
		if e.errCode != "" {
			return e
		}
		err = e.previous
	}
	return nil
}

// IsUserError returns true if the error carries a consumable UserError.
func IsUserError(err error) bool {
	return ExtractUserError(err) != nil
}

// ConcreteUserError is the materialization of a UserError for marshalling.
type ConcreteUserError struct {
	ErrCode    string `json:"code"`
	ErrMessage string `json:"message"`
}

// Build constructs a ConcreteUserError from a UserError.
func Build(err UserError) *ConcreteUserError {
	return &ConcreteUserError{
		ErrCode:    err.Code(),
		ErrMessage: err.Message(),
	}
}
