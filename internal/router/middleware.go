package router

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/maekabu-office/internal/authz"
	"github.com/maekabu-office/internal/config"
	handlershared "github.com/maekabu-office/internal/http/handlers/shared"
	"github.com/maekabu-office/internal/http/response"
	"github.com/maekabu-office/internal/i18n"
	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = handlershared.ContextKeyRequestID
const requestIDHeader = "X-Request-ID"
const serviceKeyHeader = "X-Service-Role-Key"

// CORSMiddleware CORS 設定からミドルウェアを作る
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			origins = nil
			break
		}
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	if len(cfg.AllowedMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowedMethods
	} else {
		corsConfig.AddAllowMethods("PATCH", "DELETE")
	}
	if len(cfg.AllowedHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowedHeaders
	} else {
		corsConfig.AddAllowHeaders("Authorization", requestIDHeader, serviceKeyHeader)
	}
	corsConfig.AddExposeHeaders(requestIDHeader, "Content-Disposition")
	corsConfig.AllowCredentials = cfg.AllowCredentials
	if cfg.MaxAge > 0 {
		corsConfig.MaxAge = time.Duration(cfg.MaxAge) * time.Second
	}
	return cors.New(corsConfig)
}

// RequestIDMiddleware リクエスト ID を付与する
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 構造化アクセスログ
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

func abortWithKey(c *gin.Context, code int, key string) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	response.Error(c, code, msg)
	c.Abort()
}

// SessionAuthMiddleware セッション Cookie または Bearer トークンを検証する
func SessionAuthMiddleware(authService *service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil {
			abortWithKey(c, response.CodeUnauthorized, "error.unauthorized")
			return
		}
		token := handlershared.SessionToken(c, cookieName)
		if token == "" {
			abortWithKey(c, response.CodeUnauthorized, "error.unauthorized")
			return
		}
		claims, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionSecretMissing):
				abortWithKey(c, response.CodeUnauthorized, "error.session_secret_missing")
			case errors.Is(err, service.ErrTokenRevoked):
				abortWithKey(c, response.CodeUnauthorized, "error.token_revoked")
			case service.IsAuthError(err):
				abortWithKey(c, response.CodeUnauthorized, "error.token_invalid")
			default:
				logger.Warnw("session_authenticate_failed", "request_id", getRequestID(c), "error", err)
				abortWithKey(c, response.CodeUnauthorized, "error.token_invalid")
			}
			return
		}
		handlershared.SetSessionUser(c, claims.User())
		c.Next()
	}
}

// RBACMiddleware 社員ロールでルート単位の権限を判定する
func RBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("rbac_service_unavailable")
			abortWithKey(c, response.CodeForbidden, "error.forbidden")
			return
		}
		user, ok := handlershared.SessionUserFrom(c)
		if !ok {
			abortWithKey(c, response.CodeUnauthorized, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := authzService.EnforceRole(user.Role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("rbac_enforce_failed",
				"employee_id", user.EmployeeID,
				"role", user.Role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortWithKey(c, response.CodeForbidden, "error.forbidden")
			return
		}
		if !allowed {
			logger.Warnw("rbac_permission_denied",
				"employee_id", user.EmployeeID,
				"role", user.Role,
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(resource),
			)
			abortWithKey(c, response.CodeForbidden, "error.forbidden")
			return
		}
		c.Next()
	}
}

// ServiceKeyMiddleware サーバー間呼び出しをサービスロールキーで認証する
func ServiceKeyMiddleware(serviceKey string) gin.HandlerFunc {
	expected := []byte(strings.TrimSpace(serviceKey))
	return func(c *gin.Context) {
		provided := strings.TrimSpace(c.GetHeader(serviceKeyHeader))
		if provided == "" {
			provided = handlershared.SessionToken(c, "")
		}
		if len(expected) == 0 || subtle.ConstantTimeCompare(expected, []byte(provided)) != 1 {
			abortWithKey(c, response.CodeUnauthorized, "error.service_key_invalid")
			return
		}
		c.Next()
	}
}
