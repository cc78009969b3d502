package listing

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/hrportal/internal/shared"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks the validate tags of form and returns a *shared.ValidationError
// keyed by form field name. messages overrides the text per "field.tag", or per
// "field" for every tag of that field.
func Validate(form any, messages map[string]string) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			fields[fe.Field()] = msg
			continue
		}
		if msg, ok := messages[fe.Field()]; ok {
			fields[fe.Field()] = msg
			continue
		}
		fields[fe.Field()] = fieldMessage(fe)
	}
	return shared.NewValidationError(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Wajib diisi"
	case "max":
		return "Maksimal " + fe.Param() + " karakter"
	case "min":
		return "Minimal " + fe.Param()
	case "gte":
		return "Tidak boleh kurang dari " + fe.Param()
	case "oneof":
		return "Pilih salah satu: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "numeric", "number":
		return "Harus berupa angka"
	default:
		return "Tidak valid"
	}
}

// MergeErrors combines validation errors from several checks into one.
func MergeErrors(errs ...error) error {
	fields := map[string]string{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		var validationErr *shared.ValidationError
		if !errors.As(err, &validationErr) {
			return err
		}
		for k, v := range validationErr.Fields {
			if _, ok := fields[k]; !ok {
				fields[k] = v
			}
		}
	}
	return shared.NewValidationError(fields)
}
