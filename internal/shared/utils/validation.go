package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/go-playground/validator/v10"

	"issueflow/internal/shared/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names for validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
}

// ValidateStruct validates a struct. The first failure becomes the message so
// it reaches the client through the {error} envelope; all failures go in Details.
// A top-level field may carry a msg tag that replaces the generated message
// for any failure on that field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return errors.NewValidationError("Validation failed", err.Error())
	}

	var errorMessages []string
	for _, fieldError := range validationErrors {
		if msg, ok := fieldMessage(s, fieldError); ok {
			errorMessages = append(errorMessages, msg)
			continue
		}
		errorMessages = append(errorMessages, getFieldErrorMessage(fieldError))
	}

	return errors.NewValidationError(errorMessages[0], strings.Join(errorMessages, "; "))
}

func fieldMessage(s interface{}, fe validator.FieldError) (string, bool) {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return "", false
	}
	field, ok := t.FieldByName(fe.StructField())
	if !ok {
		return "", false
	}
	msg := field.Tag.Get("msg")
	return msg, msg != ""
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "mailbox", "email":
		return "Please enter a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s characters or less", field, param)
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s items", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}

// IsValidEmail checks the address format and rejects all-digit local parts,
// which are almost always typos of a phone number.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if err := checkmail.ValidateFormat(email); err != nil {
		return false
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return false
	}
	local := email[:at]
	return strings.TrimFunc(local, func(r rune) bool { return r >= '0' && r <= '9' }) != ""
}

// NormalizeEmail trims and lowercases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
