package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// ErrValidation wraps validator failures on bound request parameters.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps query binding failures.
	ErrBinding = errors.New("binding failed")
)

var (
	validate   *validator.Validate
	translator ut.Translator
	setupOnce  sync.Once
)

// Validator returns the shared validator. Field names in errors are the
// query parameter names taken from the form tag, falling back to json.
func Validator() *validator.Validate {
	setupOnce.Do(setup)
	return validate
}

func setup() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(paramName)

	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")

	// Registration only fails for malformed built-in templates.
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(fmt.Sprintf("registering validation messages: %v", err))
	}
}

func paramName(fld reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}

	return fld.Name
}

// Validate runs struct validation on v.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindQueryAndValidate binds the query string into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors maps each failing parameter to an English message, e.g.
// {"author": "author is a required field"}. Errors without field failures
// yield an empty map.
func ValidationErrors(err error) map[string]string {
	Validator()

	out := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			out[fe.Field()] = fe.Translate(translator)
		}
	}

	return out
}
