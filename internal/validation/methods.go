package validation

import (
	"regexp"
	"strings"

	domainerrors "cardfolio/internal/errors"

	"github.com/shopspring/decimal"
)

var last4Regex = regexp.MustCompile(`^[0-9]{4}$`)

// Validator collects per-field error messages.
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError keeps the first message reported for a field.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks that a string is not blank
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// NonNegative checks that a money amount is not below zero.
func (v *Validator) NonNegative(field string, d decimal.Decimal) {
	v.Check(!d.IsNegative(), field, "must not be negative")
}

// Struct runs the struct tag rules on s and records their messages.
func (v *Validator) Struct(s interface{}) {
	for field, msg := range Struct(s) {
		v.AddError(field, msg)
	}
}

// Err returns a validation error carrying every message, or nil.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return domainerrors.Validation(v.Errors)
}
