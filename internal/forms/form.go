// Package forms implements the create/edit dialog state machine:
// closed -> open -> submitting -> closed, with validation failures and
// server field errors returning the form to open.
package forms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/clubdeportivo/clubctl/internal/apiclient"
)

// Length limits duplicated from the server-side rules. Client validation
// is intentionally weaker; the server re-checks everything.
const (
	MaxNombreLen      = 100
	MaxSlugLen        = 100
	MaxDescripcionLen = 500
)

// State of a form.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateSubmitting
)

// Mode distinguishes create from edit.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// ValidationError reports client-side validation failures. When it is
// returned, no request was sent.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], ", ")))
	}
	return strings.Join(parts, "; ")
}

// Form tracks one dialog's lifecycle and its field errors.
type Form struct {
	state       State
	mode        Mode
	recordID    int64
	fieldErrors map[string][]string
}

// NewForm creates a closed form.
func NewForm() *Form {
	return &Form{}
}

// Open puts the form in create mode.
func (f *Form) Open() {
	f.state = StateOpen
	f.mode = ModeCreate
	f.recordID = 0
	f.fieldErrors = nil
}

// OpenEdit puts the form in edit mode for an existing record. The caller
// prefills its field values from the selected record.
func (f *Form) OpenEdit(recordID int64) {
	f.state = StateOpen
	f.mode = ModeEdit
	f.recordID = recordID
	f.fieldErrors = nil
}

// Close discards all transient state.
func (f *Form) Close() {
	f.state = StateClosed
	f.recordID = 0
	f.fieldErrors = nil
}

func (f *Form) State() State { return f.state }
func (f *Form) Mode() Mode   { return f.mode }

// RecordID returns the record being edited; zero in create mode.
func (f *Form) RecordID() int64 { return f.recordID }

// FieldErrors returns the current inline errors, from either failed
// client validation or a 422 response.
func (f *Form) FieldErrors() map[string][]string { return f.fieldErrors }

// Submit validates and, only when validation passes, sends. A validation
// failure never contacts the server. A 422 response maps its field
// errors back onto the still-open form. Success closes the form and
// clears everything.
func (f *Form) Submit(ctx context.Context, validate func(v *Validator), send func(ctx context.Context) error) error {
	if f.state != StateOpen {
		return fmt.Errorf("form is not open")
	}

	v := NewValidator()
	if validate != nil {
		validate(v)
	}
	if v.HasErrors() {
		f.fieldErrors = v.Errors()
		return &ValidationError{Fields: v.Errors()}
	}
	f.fieldErrors = nil

	f.state = StateSubmitting
	err := send(ctx)
	if err != nil {
		f.state = StateOpen
		if apiErr, ok := asValidationError(err); ok {
			f.fieldErrors = apiErr.Fields
		}
		return err
	}

	f.Close()
	return nil
}

func asValidationError(err error) (*apiclient.APIError, bool) {
	if !apiclient.IsValidation(err) {
		return nil, false
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
