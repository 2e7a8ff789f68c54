package errors

import (
	"fmt"
)

// DaoError classifies data access failures so handlers can map them to
// http responses without inspecting driver errors.
type DaoError struct {
	Err           error
	Message       string
	NotFound      bool
	BadValidation bool
	AlreadyExists bool
	Forbidden     bool
}

func (e *DaoError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%v: %v", e.Message, e.Err.Error())
}

func (e *DaoError) Unwrap() error {
	return e.Err
}

func (e *DaoError) Wrap(err error) {
	e.Err = err
}
