package public

import (
	"github.com/maekabu-office/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Health DB 接続を確認する
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"status":          "ok",
		"database":        "ok",
		"has_service_key": h.Config.Database.ServiceRoleKey != "",
		"queue_enabled":   h.QueueClient.Enabled(),
		"storage_bucket":  h.Config.Storage.Bucket,
	})
}
