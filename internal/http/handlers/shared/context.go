package shared

import (
	"strings"

	"github.com/maekabu-office/internal/http/response"
	"github.com/maekabu-office/internal/service"

	"github.com/gin-gonic/gin"
)

// gin.Context のキー
const (
	ContextKeyRequestID   = "request_id"
	ContextKeyEmployeeID  = "employee_id"
	ContextKeySessionUser = "session_user"
)

// SetSessionUser 認証済みの社員を保存する
func SetSessionUser(c *gin.Context, user service.SessionUser) {
	c.Set(ContextKeyEmployeeID, user.EmployeeID)
	c.Set(ContextKeySessionUser, user)
}

// SessionUserFrom 保存済みの社員を読む
func SessionUserFrom(c *gin.Context) (service.SessionUser, bool) {
	value, exists := c.Get(ContextKeySessionUser)
	if !exists {
		return service.SessionUser{}, false
	}
	user, ok := value.(service.SessionUser)
	return user, ok
}

// GetEmployeeID ログイン中の社員 ID。なければ 401 を返す
func GetEmployeeID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextKeyEmployeeID)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	id, ok := value.(string)
	if !ok || strings.TrimSpace(id) == "" {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	return id, true
}

// SessionToken Cookie または Bearer ヘッダからトークンを取り出す
func SessionToken(c *gin.Context, cookieName string) string {
	if cookieName != "" {
		if value, err := c.Cookie(cookieName); err == nil && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
