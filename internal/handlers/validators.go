package handlers

import (
	"qrmenu/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 注册自定义校验规则，请求体在绑定阶段就能拦住非法枚举值
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("mediakind", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case models.ItemMediaKindPreview, models.ItemMediaKindFull, models.ItemMediaKindSound:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("mediatype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case models.MediaTypeImage, models.MediaTypeVideo, models.MediaTypeAudio:
			return true
		}
		return false
	})
}
