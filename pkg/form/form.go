// Package form validates and submits the create-note form.
package form

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/aretw0/notehub/pkg/core"
)

// Field names as the form knows them.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldTag     = "tag"
)

// ErrInvalid is returned by Submit when a field fails validation.
var ErrInvalid = errors.New("form has invalid fields")

// Values is the form data. The struct tags are the validation schema.
type Values struct {
	Title   string   `form:"title" validate:"required,min=3,max=50"`
	Content string   `form:"content" validate:"max=500"`
	Tag     core.Tag `form:"tag" validate:"required,notetag"`
}

// Params converts the values into a create request.
func (v Values) Params() core.CreateNoteParams {
	return core.CreateNoteParams{Title: v.Title, Content: v.Content, Tag: v.Tag}
}

// Initial returns the values of a fresh form.
func Initial() Values {
	return Values{Tag: core.TagTodo}
}

// Errors maps a field name to its message.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range []string{FieldTitle, FieldContent, FieldTag} {
		if msg, ok := e[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Creator is the piece of the mutation coordinator the form needs.
type Creator interface {
	Create(ctx context.Context, params core.CreateNoteParams) (core.Note, error)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schema() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			return f.Tag.Get("form")
		})
		_ = v.RegisterValidation("notetag", func(fl validator.FieldLevel) bool {
			return core.Tag(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}

// Form holds edit state: values, which fields were touched and the current
// messages. It is safe for concurrent use.
type Form struct {
	mu      sync.Mutex
	values  Values
	touched map[string]bool
	errors  Errors
}

// New creates a form with initial values.
func New() *Form {
	return &Form{
		values:  Initial(),
		touched: make(map[string]bool),
		errors:  make(Errors),
	}
}

// Values returns the current values.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns a copy of the current messages.
func (f *Form) Errors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(Errors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Set changes a field. A field that was already touched is revalidated.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldTitle:
		f.values.Title = value
	case FieldContent:
		f.values.Content = value
	case FieldTag:
		// Unknown tags are kept as typed so the message can point at them.
		if tag, err := core.ParseTag(value); err == nil {
			f.values.Tag = tag
		} else {
			f.values.Tag = core.Tag(value)
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	if f.touched[field] {
		f.validateFieldLocked(field)
	}
	return nil
}

// Blur marks a field as touched and validates it.
func (f *Form) Blur(field string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[field] = true
	f.validateFieldLocked(field)
}

// Validate checks every field and returns the messages, nil if all pass.
func (f *Form) Validate() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() Errors {
	for _, field := range []string{FieldTitle, FieldContent, FieldTag} {
		f.touched[field] = true
	}
	f.errors = check(f.values)
	if len(f.errors) == 0 {
		return nil
	}
	out := make(Errors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *Form) validateFieldLocked(field string) {
	delete(f.errors, field)
	if msg, ok := check(f.values)[field]; ok {
		f.errors[field] = msg
	}
}

// Submit validates the form and, if every field passes, asks creator to
// store the note. Values are reset only after the create succeeds; on
// failure they stay so the user can retry.
func (f *Form) Submit(ctx context.Context, creator Creator) (core.Note, error) {
	f.mu.Lock()
	if errs := f.validateLocked(); errs != nil {
		f.mu.Unlock()
		return core.Note{}, fmt.Errorf("%w: %v", ErrInvalid, errs)
	}
	params := f.values.Params()
	f.mu.Unlock()

	note, err := creator.Create(ctx, params)
	if err != nil {
		return core.Note{}, err
	}

	f.Reset()
	return note, nil
}

// Reset restores initial values and clears messages.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = Initial()
	f.touched = make(map[string]bool)
	f.errors = make(Errors)
}

// check runs the schema over v.
func check(v Values) Errors {
	errs := make(Errors)
	err := schema().Struct(v)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[FieldTitle] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be %s characters or less", fe.Param())
	case "notetag":
		names := make([]string, 0, 5)
		for _, t := range core.Tags() {
			names = append(names, string(t))
		}
		return "Must be one of: " + strings.Join(names, ", ")
	default:
		return "Invalid value"
	}
}
