package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/bytes"
)

const (
	TagRoutePath = "routepath"
	TagByteSize  = "bytesize"
)

type Validator struct {
	Validator *validator.Validate
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Message)
	}

	return strings.Join(msgs, "; ")
}

// New returns a validator that reports fields by their env tag, falling back to the json tag,
// and knows the routepath and bytesize tags.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(fieldName)

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation(TagRoutePath, validateRoutePath)
	_ = v.RegisterValidation(TagByteSize, validateByteSize)

	return &Validator{Validator: v}
}

func fieldName(fld reflect.StructField) string {
	const maxSplits = 2

	for _, key := range []string{"env", "json"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", maxSplits)[0]

		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}

	return ""
}

// validateRoutePath accepts absolute route paths without query or trailing slash.
func validateRoutePath(fl validator.FieldLevel) bool {
	path := fl.Field().String()

	if !strings.HasPrefix(path, "/") || strings.ContainsAny(path, "?#: ") {
		return false
	}

	return path == "/" || !strings.HasSuffix(path, "/")
}

// validateByteSize accepts sizes such as "2M" or "512KB"; empty means unset.
func validateByteSize(fl validator.FieldLevel) bool {
	size := fl.Field().String()
	if size == "" {
		return true
	}

	_, err := bytes.Parse(size)

	return err == nil
}

func (v *Validator) Validate(i any) error {
	if err := v.Validator.Struct(i); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.formatValidationErrors(validationErrs)
		}

		return err
	}

	return nil
}

func (v *Validator) formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	validationErrs := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		field := err.Field()
		if field == "" {
			field = err.StructField()
		}

		validationErrs = append(validationErrs, ValidationError{
			Field:   field,
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
			Message: v.generateErrorMessage(field, err),
		})
	}

	return validationErrs
}

func (v *Validator) generateErrorMessage(field string, err validator.FieldError) string {
	msg := v.getSimpleErrorMessage(field, err.Tag())
	if msg != "" {
		return msg
	}

	return v.getParameterizedErrorMessage(field, err)
}

func (v *Validator) getSimpleErrorMessage(field, tag string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "url":
		return field + " must be a valid URL"
	case "http_url":
		return field + " must be a valid HTTP(S) URL"
	case "hostname", "hostname_rfc1123":
		return field + " must be a valid hostname"
	case "uuid":
		return field + " must be a valid UUID"
	case TagRoutePath:
		return field + " must be an absolute path without a trailing slash"
	case TagByteSize:
		return field + " must be a byte size such as 2M or 512KB"
	default:
		return ""
	}
}

func (v *Validator) getParameterizedErrorMessage(field string, err validator.FieldError) string {
	param := err.Param()
	tag := err.Tag()

	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, param)
	default:
		return fmt.Sprintf("%s failed validation on '%s'", field, err.Tag())
	}
}

func (v *Validator) RegisterCustomValidation(tag string, fn validator.Func) error {
	return v.Validator.RegisterValidation(tag, fn)
}
