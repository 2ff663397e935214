package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"

	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
)

// Check collects field problems for one payload. The zero value is ready to use.
type Check struct {
	problems []string
}

func (c *Check) add(field, format string, args ...interface{}) {
	c.problems = append(c.problems, field+": "+fmt.Sprintf(format, args...))
}

func (c *Check) Required(field, value string) *Check {
	if strings.TrimSpace(value) == "" {
		c.add(field, "is required")
	}
	return c
}

// RequiredID flags ids that are unset or not positive.
func (c *Check) RequiredID(field string, id int64) *Check {
	if id <= 0 {
		c.add(field, "is required")
	}
	return c
}

// RequiredSet flags a value the caller has determined to be missing.
func (c *Check) RequiredSet(field string, set bool) *Check {
	if !set {
		c.add(field, "is required")
	}
	return c
}

// OneOf accepts an empty value; pair it with Required when the field is mandatory.
func (c *Check) OneOf(field, value string, allowed []string) *Check {
	if value == "" {
		return c
	}
	for _, a := range allowed {
		if value == a {
			return c
		}
	}
	c.add(field, "must be one of %s", strings.Join(allowed, ", "))
	return c
}

var vars = playground.New()

// Email accepts an empty value.
func (c *Check) Email(field, value string) *Check {
	if strings.TrimSpace(value) == "" {
		return c
	}
	if vars.Var(value, "email") != nil {
		c.add(field, "must be a valid email")
	}
	return c
}

func (c *Check) NonNegative(field string, v float64) *Check {
	if v < 0 {
		c.add(field, "must not be negative")
	}
	return c
}

func (c *Check) Failf(field, format string, args ...interface{}) *Check {
	c.add(field, format, args...)
	return c
}

// Err returns a validation AppError listing every problem, or nil.
func (c *Check) Err() error {
	if len(c.problems) == 0 {
		return nil
	}
	return apperrors.Validation("%s", strings.Join(c.problems, "; "))
}

// RegisterJSONTagNames makes gin's binding validator report json field names.
func RegisterJSONTagNames() {
	v, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(jsonTagName)
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

// TranslateBindError turns a binding failure into a 400 AppError with
// "<field>: <message>" entries.
func TranslateBindError(err error) error {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.BadRequest("Invalid request body: "+err.Error(), err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+": "+describe(fe))
	}
	return apperrors.Validation("%s", strings.Join(msgs, "; "))
}

func describe(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	}
	return "failed " + fe.Tag() + " validation"
}
