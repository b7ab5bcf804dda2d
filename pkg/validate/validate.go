package validate

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	time24Re  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	dayCodeRe = regexp.MustCompile(`^(M|T|W|TH|F|S|SU)$`)
)

// RegisterCustomValidators 向 Gin 的 binding 引擎注册自定义校验规则
//
//	time24  — HH:MM 格式的 24 小时制时间
//	daycode — 星期缩写（M/T/W/TH/F/S/SU）
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("time24", func(fl validator.FieldLevel) bool {
		return time24Re.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("daycode", func(fl validator.FieldLevel) bool {
		return dayCodeRe.MatchString(fl.Field().String())
	})
}
