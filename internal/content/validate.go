package content

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce    sync.Once
	structValidator *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return structValidator
}

// FieldError describes one failed struct rule in a content file.
type FieldError struct {
	Source string
	Field  string
	Rule   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %s failed rule %q", e.Source, e.Field, e.Rule)
}

// ValidationErrors collects every rule failure in one file.
type ValidationErrors []*FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func validateStruct(source string, v any) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %s: %w", source, err)
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out = append(out, &FieldError{Source: source, Field: fe.Namespace(), Rule: rule})
	}
	return out
}
