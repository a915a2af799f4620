package admin

import (
	"net/url"

	"github.com/maekabu-office/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListAuthzRoles ロール一覧
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzRolePolicies ロールのポリシー一覧
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role, err := url.PathUnescape(c.Param("role"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.authz_failed", err)
		return
	}
	response.Success(c, policies)
}

// GetMe ログイン中の社員
func (h *Handler) GetMe(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	response.Success(c, user)
}
