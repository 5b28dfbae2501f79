// Package validation registers the account field rules on gin's validator
// engine and turns validator failures into 400 application errors.
package validation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"videotube/pkg/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	fullNamePattern = regexp.MustCompile(`^[a-zA-Z]+(?:\s[a-zA-Z]+)*$`)
	passwordPattern = regexp.MustCompile(`^[A-Za-z\d]{8,}$`)
	letterPattern   = regexp.MustCompile(`[A-Za-z]`)
	digitPattern    = regexp.MustCompile(`\d`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	registerOnce sync.Once
	registerErr  error
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RegisterGin installs the custom rules on gin's default binding engine.
func RegisterGin() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}

func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)

	rules := map[string]validator.Func{
		"username": func(fl validator.FieldLevel) bool { return usernamePattern.MatchString(fl.Field().String()) },
		"fullname": func(fl validator.FieldLevel) bool { return fullNamePattern.MatchString(fl.Field().String()) },
		"password": func(fl validator.FieldLevel) bool { return IsValidPassword(fl.Field().String()) },
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return errors.Wrapf(err, "register %s rule", tag)
		}
	}
	return nil
}

// IsValidPassword: at least 8 letters or digits, with at least one of each.
func IsValidPassword(s string) bool {
	return passwordPattern.MatchString(s) && letterPattern.MatchString(s) && digitPattern.MatchString(s)
}

func IsValidFullName(s string) bool {
	return fullNamePattern.MatchString(s)
}

// Translate maps binding failures to a 400 whose message is the first
// field problem and whose details list all of them.
func Translate(err error) *apperror.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Message: message(fe)})
		}
		return apperror.Validation(fields[0].Message).WithDetails(fields)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var sizeErr *http.MaxBytesError
	switch {
	case errors.As(err, &sizeErr):
		return apperror.PayloadTooLarge("request body too large")
	case errors.As(err, &syntaxErr):
		return apperror.Validation("request body is not valid JSON")
	case errors.As(err, &typeErr):
		return apperror.Validation(fmt.Sprintf("%s has the wrong type", typeErr.Field))
	}
	return apperror.Validation("invalid request")
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid", "uuid4":
		return field + " must be a valid id"
	case "username":
		return "Username must contain only letters and numbers"
	case "fullname":
		return "Full name must contain only letters and may have space to separate first name and last name"
	case "password":
		return "Password must be at least 8 characters long and contain both letters and numbers"
	}
	return field + " is invalid"
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}
