package domain

import (
	"errors"
	"fmt"
)

// InvalidInputError reports malformed or missing request fields. Callers
// should not retry.
type InvalidInputError struct {
	Field string
	Msg   string
}

func (e InvalidInputError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return "invalid input: " + e.Msg
	case e.Field != "":
		return "invalid input: " + e.Field
	default:
		return "invalid input"
	}
}

// ValidationError reports a wizard guard that was not satisfied. Field names
// the unmet condition so the presentation layer can point at it.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return "validation failed"
}

// UpstreamError wraps a failure of the external sailing source.
type UpstreamError struct {
	Op  string
	Err error
}

func (e UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("upstream unavailable: %s", e.Op)
	}
	return fmt.Sprintf("upstream unavailable: %s: %v", e.Op, e.Err)
}

func (e UpstreamError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func IsInvalidInput(err error) bool {
	var target InvalidInputError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}
