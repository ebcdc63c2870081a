package internal

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their yaml name so messages match the stored files.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("billing_cycle", func(fl validator.FieldLevel) bool {
		c, ok := fl.Field().Interface().(BillingCycle)
		return ok && c.Valid()
	})
	// Dates validate as their canonical string; the zero date becomes "".
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(CivilDate); ok {
			return d.String()
		}
		return nil
	}, CivilDate{})

	return v
}

// Validate checks every field of the subscription and returns a
// *ValidationError listing all problems found.
func (s *Subscription) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating subscription: %w", err)
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, FieldError{
			Field:   fe.Field(),
			Message: msgForTag(fe),
		})
	}
	return verr
}

func msgForTag(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color like #1DB954", field)
	case "billing_cycle":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(CycleNames(), ", "))
	case "datetime":
		return fmt.Sprintf("%s must be a valid YYYY-MM-DD date", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
