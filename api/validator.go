package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// useJsonFieldNames makes binding validation errors name the fields as they are sent.
func useJsonFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// adaptFieldValidationError turns a binding validation error into a readable message.
func adaptFieldValidationError(fe validator.FieldError) string {
	var reason string
	switch fe.ActualTag() {
	case "required":
		reason = "is required"
	case "oneof":
		reason = fmt.Sprintf("must be one of %s", strings.Join(strings.Split(fe.Param(), " "), ", "))
	default:
		reason = "is invalid"
	}
	return fmt.Sprintf("field `%s` %s", fe.Field(), reason)
}
