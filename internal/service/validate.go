package service

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// RegisterValidations 注册自定义规则，gin 的 binding 引擎启动时也会调用
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
}

func newValidator() *validator.Validate {
	v := validator.New()
	// 错误里的字段名使用表单字段名
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}
