package middleware

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var telephonePattern = regexp.MustCompile(`^[+]?[0-9\s\-\(\)]{8,20}$`)

// RegisterValidators installs the custom validators on Gin's binding
// engine and makes field errors report JSON names.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("telephone", func(fl validator.FieldLevel) bool {
		return telephonePattern.MatchString(fl.Field().String())
	})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
}
