package router

import (
	"errors"
	"sync"

	handlershared "github.com/maekabu-office/internal/http/handlers/shared"
	"github.com/maekabu-office/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// RegisterValidators gin のバインダーに独自タグを登録する
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = errors.New("unexpected validator engine")
			return
		}
		if err := engine.RegisterValidation(handlershared.TagPlatform, validatePlatform); err != nil {
			validatorsErr = err
			return
		}
		validatorsErr = engine.RegisterValidation(handlershared.TagDistributionMethod, validateDistributionMethod)
	})
	return validatorsErr
}

// 空は required 側で判定する
func validatePlatform(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ValidPlatform(value)
}

func validateDistributionMethod(fl validator.FieldLevel) bool {
	_, err := models.ParseDistributionMethod(fl.Field().String())
	return err == nil
}
