package middleware

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var productCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// SetupValidator configures the gin binding validator: JSON field names in
// error messages and the product_code tag used by catalog requests.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("product_code", func(fl validator.FieldLevel) bool {
		return productCodePattern.MatchString(fl.Field().String())
	})
}
