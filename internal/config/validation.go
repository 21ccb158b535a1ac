package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mordilloSan/runlog/logger"
)

// ValidationError is one invalid field.
type ValidationError struct {
	FieldPath string // e.g. "logger.level"
	Message   string
}

// ValidationErrors collects every invalid field.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("severity", validateSeverity); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("file_name", validateFileName); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateSeverity(fl validator.FieldLevel) bool {
	_, err := logger.ParseSeverity(fl.Field().String())
	return err == nil
}

// file names may not point outside the log directory
func validateFileName(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v != "" && v != "." && v != ".." && !strings.ContainsAny(v, `/\`)
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "severity":
		return "must be one of: debug info warning error fatal todo"
	case "file_name":
		return "must be a plain file name without path separators"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// Validate checks the settings and returns ValidationErrors on failure.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "Config.logger.level"; drop the root type name.
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		out = append(out, ValidationError{FieldPath: path, Message: validationMessage(fe)})
	}
	return out
}
