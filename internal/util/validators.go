package util

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupOnce sync.Once

// 字段名到提示标签的映射
var fieldLabels = map[string]string{
	"username": "Username",
	"email":    "Email",
	"password": "Password",
	"fullName": "Full name",
	"caption":  "Caption",
	"text":     "Text",
}

// JSONTagName 让校验错误使用 json/form 标签中的字段名
func JSONTagName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// SetupBindingValidator 让 gin 的绑定校验使用 JSONTagName
func SetupBindingValidator() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(JSONTagName)
		}
	})
}

// ValidationMessage 将绑定错误转换为面向用户的提示
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request data"
	}

	fe := verrs[0]
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	if fe.Tag() == "required" {
		return label + " is required"
	}
	return label + " is invalid"
}
