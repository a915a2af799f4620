package shared

import (
	"errors"

	"github.com/maekabu-office/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// 独自バリデーションタグ
const (
	TagPlatform           = "platform"
	TagDistributionMethod = "distribution_method"
)

var bindErrorKeys = map[string]string{
	TagPlatform:           "error.platform_invalid",
	TagDistributionMethod: "error.distribution_invalid",
}

// RespondBindError バインド失敗を 400 で返す。独自タグは専用メッセージにする
func RespondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fieldErr := range verrs {
			if key, ok := bindErrorKeys[fieldErr.Tag()]; ok {
				RespondError(c, response.CodeBadRequest, key, nil)
				return
			}
		}
	}
	RespondError(c, response.CodeBadRequest, "error.bad_request", err)
}
