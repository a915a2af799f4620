package public

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/maekabu-office/internal/constants"
	handlershared "github.com/maekabu-office/internal/http/handlers/shared"
	"github.com/maekabu-office/internal/http/response"
	"github.com/maekabu-office/internal/i18n"
	"github.com/maekabu-office/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest ログイン要求
type LoginRequest struct {
	EmployeeNumber string `json:"employee_number" binding:"required"`
	Password       string `json:"password" binding:"required"`
	CaptchaID      string `json:"captcha_id"`
	CaptchaCode    string `json:"captcha_code"`
}

// LoginResponse ログイン応答
type LoginResponse struct {
	Success   bool                `json:"success"`
	User      service.SessionUser `json:"user"`
	Token     string              `json:"token"`
	ExpiresAt string              `json:"expires_at"`
}

// SessionState ログイン状態
type SessionState struct {
	Authenticated bool                 `json:"authenticated"`
	Configured    *bool                `json:"configured,omitempty"`
	User          *service.SessionUser `json:"user"`
}

// Login 社員コードとパスワードでログインし、セッション Cookie を発行する
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CaptchaService.Verify(service.CaptchaVerifyPayload{CaptchaID: req.CaptchaID, CaptchaCode: req.CaptchaCode}); err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaRequired):
			respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
		default:
			respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
		}
		return
	}

	employee, token, expiresAt, err := h.AuthService.Login(c.Request.Context(), req.EmployeeNumber, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.login_invalid", nil)
		case errors.Is(err, service.ErrSessionSecretMissing):
			respondError(c, response.CodeInternal, "error.session_secret_missing", err)
		default:
			respondError(c, response.CodeInternal, "error.login_failed", err)
		}
		return
	}

	h.setSessionCookie(c, token, time.Until(expiresAt))
	response.Success(c, LoginResponse{
		Success:   true,
		User:      h.AuthService.SessionUserOf(employee),
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// GetLogin Cookie のセッションを確認する。未ログインでも 200 を返す
func (h *Handler) GetLogin(c *gin.Context) {
	response.Success(c, h.sessionState(c))
}

// CheckSession 接続設定とセッションを確認する
func (h *Handler) CheckSession(c *gin.Context) {
	configured := strings.TrimSpace(h.Config.Database.URL) != "" && strings.TrimSpace(h.Config.Database.AnonKey) != ""
	if !configured {
		response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.not_configured"), SessionState{Configured: &configured})
		return
	}
	state := h.sessionState(c)
	state.Configured = &configured
	response.Success(c, state)
}

// Logout セッション Cookie を削除する
func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -time.Second)
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.logout"), gin.H{"success": true})
}

// GetCaptcha ログイン用の画像認証を発行する
func (h *Handler) GetCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		if errors.Is(err, service.ErrCaptchaDisabled) {
			respondError(c, response.CodeNotFound, "error.captcha_disabled", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, challenge)
}

func (h *Handler) sessionState(c *gin.Context) SessionState {
	token := handlershared.SessionToken(c, h.cookieName())
	if token == "" {
		return SessionState{}
	}
	claims, err := h.AuthService.Authenticate(c.Request.Context(), token)
	if err != nil {
		if !service.IsAuthError(err) {
			handlershared.RequestLog(c).Warnw("auth_session_state_failed", "error", err)
		}
		return SessionState{}
	}
	user := claims.User()
	return SessionState{Authenticated: true, User: &user}
}

func (h *Handler) cookieName() string {
	if name := strings.TrimSpace(h.Config.Session.CookieName); name != "" {
		return name
	}
	return constants.SessionCookieName
}

// setSessionCookie httpOnly / SameSite=Lax の Cookie を書く。ttl が負なら削除
func (h *Handler) setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName(), token, maxAge, "/", "", h.Config.Session.Secure || h.Config.Server.IsRelease(), true)
}
