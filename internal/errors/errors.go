// Package errors defines the domain error taxonomy shared by the store,
// the services and the HTTP layer.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// DomainError is a coded error. Two DomainErrors match under errors.Is when
// their codes are equal, so callers compare against the package sentinels.
type DomainError struct {
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *DomainError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.Fields[k])
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DomainError) Unwrap() error { return e.Err }

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Validation builds a validation error carrying per-field messages.
func Validation(fields map[string]string) *DomainError {
	return &DomainError{
		Code:    ErrValidation.Code,
		Message: ErrValidation.Message,
		Fields:  fields,
	}
}

// NotFound builds a not-found error for the given card id.
func NotFound(id string) *DomainError {
	return &DomainError{
		Code:    ErrNotFound.Code,
		Message: fmt.Sprintf("card %s not found", id),
	}
}

// IO wraps a storage failure. Lock timeouts keep their own code.
func IO(op string, err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, ErrLockTimeout) {
		return err
	}
	return &DomainError{
		Code:    ErrIO.Code,
		Message: op,
		Err:     err,
	}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return stderrors.Is(err, ErrValidation) }

// IsNotFound reports whether err refers to a missing card.
func IsNotFound(err error) bool { return stderrors.Is(err, ErrNotFound) }

// IsIO reports whether err is a storage or locking failure.
func IsIO(err error) bool {
	return stderrors.Is(err, ErrIO) || stderrors.Is(err, ErrLockTimeout)
}

// FieldsOf returns the per-field messages of a validation error, if any.
func FieldsOf(err error) map[string]string {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Fields
	}
	return nil
}
