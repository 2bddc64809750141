package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/example/cragmark/internal/route"
)

// ErrInvalidBlob wraps every validation failure of a persisted session.
var ErrInvalidBlob = errors.New("invalid session")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("grade", func(fl validator.FieldLevel) bool {
			g, err := route.ParseGrade(fl.Field().String())
			return err == nil && g != ""
		})
	})
	return validate
}

// Validate checks b against its struct tags.
func Validate(b Blob) error {
	err := validatorInstance().Struct(b)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidBlob, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidBlob, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_with":
		return fmt.Sprintf("%s is required when %s is set", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	case "latitude", "longitude":
		return fmt.Sprintf("%s is not a valid %s", field, fe.Tag())
	case "grade":
		return fmt.Sprintf("%s %q is not a grade", field, fe.Value())
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
