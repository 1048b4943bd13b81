package domain

import (
	"errors"
	"fmt"
)

// ValidationError marks malformed, missing or conflicting input.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a missing entity or an access the caller is not
// permitted to see. The original behavior reports both as not found.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

func NotFoundf(format string, args ...any) error {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

// AlreadyExistsError marks a unique-constraint violation.
type AlreadyExistsError struct {
	msg string
}

func (e *AlreadyExistsError) Error() string { return e.msg }

func AlreadyExistsf(format string, args ...any) error {
	return &AlreadyExistsError{msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsAlreadyExists(err error) bool {
	var target *AlreadyExistsError
	return errors.As(err, &target)
}
