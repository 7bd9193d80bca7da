package dto

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators teaches gin's validator about decimal amounts.
// "dgt0" requires a decimal strictly greater than zero.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return registerDecimal(v)
}

// NewValidator returns a standalone validator that reads the same "binding" tags gin
// uses. Entry points that do not go through gin validate requests with it.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	v.SetTagName("binding")
	if err := registerDecimal(v); err != nil {
		return nil, err
	}
	return v, nil
}

func registerDecimal(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	return v.RegisterValidation("dgt0", func(fl validator.FieldLevel) bool {
		switch val := fl.Field().Interface().(type) {
		case decimal.Decimal:
			return val.IsPositive()
		case string:
			d, err := decimal.NewFromString(val)
			return err == nil && d.IsPositive()
		default:
			return false
		}
	})
}
