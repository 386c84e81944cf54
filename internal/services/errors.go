package services

import "fmt"

// OpsError is the coded error returned by the operations services. The api
// package maps codes to HTTP status.
type OpsError struct {
	Code    string
	Message string
	Err     error
}

func (e *OpsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *OpsError) Unwrap() error {
	return e.Err
}
