package admin

import (
	handlershared "github.com/maekabu-office/internal/http/handlers/shared"
	"github.com/maekabu-office/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func respondBindError(c *gin.Context, err error) {
	handlershared.RespondBindError(c, err)
}

func getEmployeeID(c *gin.Context) (string, bool) {
	return handlershared.GetEmployeeID(c)
}

func sessionUser(c *gin.Context) (service.SessionUser, bool) {
	return handlershared.SessionUserFrom(c)
}
