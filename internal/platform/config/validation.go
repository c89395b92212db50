package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their koanf keys, so errors name the exact
// YAML path or APP_ variable to fix.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}

		return name
	})
	v.RegisterStructValidation(validateTimeouts, Config{})

	return v
}

// validateTimeouts keeps the store query deadline within the request deadline.
func validateTimeouts(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok || !cfg.Mongo.Enabled {
		return
	}

	request, query := cfg.Server.RequestTimeout, cfg.Mongo.QueryTimeout
	if request > 0 && query > request {
		sl.ReportError(cfg.Mongo.QueryTimeout, "mongo.query_timeout", "QueryTimeout", "ltefield", "server.request_timeout")
	}
}

// Validate checks c and reports every invalid key at once. The service
// refuses to start on error.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	return nil
}

func formatValidationErrors(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		lines = append(lines, formatFieldError(fe))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func formatFieldError(e validator.FieldError) string {
	key := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", key, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, e.Param())
	case "url":
		return key + " must be a valid URL"
	case "startswith":
		return fmt.Sprintf("%s must start with %q", key, e.Param())
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", key, e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", key, e.Tag())
	}
}

// formatFieldPath drops the root struct from a namespace:
// "Config.server.read_timeout" becomes "server.read_timeout".
func formatFieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return rest
}
