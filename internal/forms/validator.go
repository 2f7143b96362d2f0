package forms

import (
	"fmt"
	"strings"
)

// Validator accumulates per-field validation messages.
type Validator struct {
	errs map[string][]string
}

// NewValidator creates an empty validator.
func NewValidator() *Validator {
	return &Validator{errs: map[string][]string{}}
}

// AddError records a message against a field.
func (v *Validator) AddError(field, message string) {
	v.errs[field] = append(v.errs[field], message)
}

// Required checks presence of a trimmed string value.
func (v *Validator) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
}

// MaxLen checks the maximum rune length of a value.
func (v *Validator) MaxLen(field, value string, max int) {
	if len([]rune(value)) > max {
		v.AddError(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

// AgeRange checks the minimum age is strictly below the maximum.
func (v *Validator) AgeRange(minField, maxField string, min, max int) {
	if min < 0 {
		v.AddError(minField, "must not be negative")
	}
	if min >= max {
		v.AddError(minField, fmt.Sprintf("must be less than %s", maxField))
	}
}

// OneOf checks the value is one of the allowed choices. Empty values
// should be guarded with Required separately.
func (v *Validator) OneOf(field, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Errors returns the accumulated field errors.
func (v *Validator) Errors() map[string][]string {
	return v.errs
}
