package validate

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"reflect"
	"strings"
	"sync"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// FieldError names a field by its json tag and the validation tag it failed.
type FieldError struct {
	Field string
	Tag   string
}

// Error collects every failed field of one struct.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	message := ""
	for _, f := range e.Fields {
		if len(message) > 0 {
			message += "; "
		}
		message += fmt.Sprintf("%s %s", f.Field, f.Tag)
	}
	return message
}

// Missing reports whether at least one field failed the `required` tag.
func (e *Error) Missing() bool {
	for _, f := range e.Fields {
		if f.Tag == "required" {
			return true
		}
	}
	return false
}

// IsMissing reports whether err is a validation error caused by an absent field.
func IsMissing(err error) bool {
	var ve *Error
	return errors.As(err, &ve) && ve.Missing()
}

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return instance
}

// Struct validates a single struct object
func Struct(s interface{}) error {
	if s == nil {
		return fmt.Errorf("is nil")
	}
	if !isStruct(s) {
		return fmt.Errorf("not a struct")
	}
	var validationErrors validator.ValidationErrors
	var invalidValidationError *validator.InvalidValidationError

	err := get().Struct(s)
	if err == nil {
		return nil
	}

	if errors.As(err, &validationErrors) {
		ve := &Error{}
		for _, fieldErr := range validationErrors {
			ve.Fields = append(ve.Fields, FieldError{Field: fieldErr.Field(), Tag: fieldErr.Tag()})
		}
		return ve
	} else if errors.As(err, &invalidValidationError) {
		return fmt.Errorf("invalid validation error: %w", err)
	} else {
		return fmt.Errorf("unknown validation error: %w", err)
	}
}

func isStruct(s interface{}) bool {
	r := reflect.TypeOf(s)
	if r.Kind() == reflect.Ptr {
		r = r.Elem()
	}
	return r.Kind() == reflect.Struct
}
