// Package forms models the outcome of binding and validating submitted form data.
package forms

import (
	"strings"
	"time"
)

// DateLayout is the wire format accepted for form date fields.
const DateLayout = "2006-01-02"

// FieldError records a rejected field on a bound form object.
type FieldError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// Result accumulates field errors per bound object while a form is processed.
// Objects without errors never appear in the result.
type Result struct {
	fields map[string][]FieldError
}

// NewResult creates an empty binding result.
func NewResult() *Result {
	return &Result{fields: make(map[string][]FieldError)}
}

// Reject records a field error against the named object.
func (r *Result) Reject(object, field, code string) {
	r.fields[object] = append(r.fields[object], FieldError{Field: field, Code: code})
}

// HasErrors reports whether any object collected at least one field error.
func (r *Result) HasErrors() bool {
	for _, errs := range r.fields {
		if len(errs) > 0 {
			return true
		}
	}
	return false
}

// HasObjectErrors reports whether the named object collected any field error.
func (r *Result) HasObjectErrors(object string) bool {
	return len(r.fields[object]) > 0
}

// HasFieldError reports whether the named field of an object was rejected.
func (r *Result) HasFieldError(object, field string) bool {
	for _, fe := range r.fields[object] {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// FieldErrors returns the errors collected for the named object.
func (r *Result) FieldErrors(object string) []FieldError {
	errs := r.fields[object]
	if len(errs) == 0 {
		return nil
	}
	return append([]FieldError{}, errs...)
}

// ByObject returns a copy of all collected errors keyed by object name.
func (r *Result) ByObject() map[string][]FieldError {
	if !r.HasErrors() {
		return nil
	}
	out := make(map[string][]FieldError, len(r.fields))
	for object, errs := range r.fields {
		if len(errs) == 0 {
			continue
		}
		out[object] = append([]FieldError{}, errs...)
	}
	return out
}

// HasText reports whether the value contains at least one non-whitespace character.
func HasText(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ParseDate parses a form date field using DateLayout.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate renders a date the way form fields expect it.
func FormatDate(value time.Time) string {
	return value.Format(DateLayout)
}
