package router

import (
	"sort"
	"strings"

	"github.com/maekabu-office/internal/authz"
	"github.com/maekabu-office/internal/config"
	"github.com/maekabu-office/internal/constants"
	adminhandlers "github.com/maekabu-office/internal/http/handlers/admin"
	publichandlers "github.com/maekabu-office/internal/http/handlers/public"
	"github.com/maekabu-office/internal/http/response"
	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/provider"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

// SetupRouter ルーティングを初期化する
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	if err := RegisterValidators(); err != nil {
		logger.Warnw("router_register_validators_failed", "error", err)
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	loginRule := LoginRateLimitRule(cfg.Security.LoginRateLimit, cfg.Redis.Prefix)
	loginRule.MessageKey = "error.login_too_many"

	cookieName := strings.TrimSpace(cfg.Session.CookieName)
	if cookieName == "" {
		cookieName = constants.SessionCookieName
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group(apiPrefix)
	{
		apiV1.GET("/health", publicHandler.Health)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(c.Cache.Client(), loginRule, KeyByIPAndJSONField("employee_number")), publicHandler.Login)
			auth.GET("/login", publicHandler.GetLogin)
			auth.POST("/logout", publicHandler.Logout)
			auth.GET("/check-session", publicHandler.CheckSession)
			auth.GET("/captcha", publicHandler.GetCaptcha)
			auth.PUT("/password", SessionAuthMiddleware(c.AuthService, cookieName), adminHandler.UpdatePassword)
		}

		// サーバー間の取込はサービスロールキーのみ
		apiV1.POST("/bank-transactions/import", ServiceKeyMiddleware(cfg.Database.ServiceRoleKey), adminHandler.ImportBankTransactions)

		authorized := apiV1.Group("")
		authorized.Use(SessionAuthMiddleware(c.AuthService, cookieName), RBACMiddleware(c.AuthzService))
		{
			authorized.GET("/me", adminHandler.GetMe)

			authorized.GET("/clients", adminHandler.ListClients)
			authorized.POST("/clients", adminHandler.CreateClient)
			authorized.GET("/clients/:id", adminHandler.GetClient)
			authorized.PUT("/clients/:id", adminHandler.UpdateClient)
			authorized.DELETE("/clients/:id", adminHandler.DeleteClient)

			authorized.GET("/companies", adminHandler.ListCompanies)
			authorized.POST("/companies", adminHandler.CreateCompany)
			authorized.GET("/companies/:id", adminHandler.GetCompany)
			authorized.PUT("/companies/:id", adminHandler.UpdateCompany)
			authorized.DELETE("/companies/:id", adminHandler.DeleteCompany)

			authorized.GET("/creators", adminHandler.ListCreators)
			authorized.POST("/creators", adminHandler.CreateCreator)
			authorized.PUT("/creators", adminHandler.UpdateCreator)
			authorized.DELETE("/creators", adminHandler.DeleteCreator)

			authorized.GET("/pf-creators", adminHandler.ListPfCreators)
			authorized.POST("/pf-creators", adminHandler.CreatePfCreator)
			authorized.PUT("/pf-creators", adminHandler.UpdatePfCreator)
			authorized.DELETE("/pf-creators", adminHandler.DeletePfCreator)

			authorized.GET("/agencies", adminHandler.ListAgencies)

			authorized.GET("/invoices", adminHandler.ListInvoices)
			authorized.POST("/invoices", adminHandler.CreateInvoice)
			authorized.GET("/invoices/:id", adminHandler.GetInvoice)
			authorized.PUT("/invoices/:id", adminHandler.UpdateInvoice)
			authorized.DELETE("/invoices/:id", adminHandler.DeleteInvoice)
			authorized.GET("/invoices/:id/pdf", adminHandler.GetInvoicePDF)

			authorized.GET("/vendor-invoices", adminHandler.ListVendorInvoices)
			authorized.POST("/vendor-invoices", adminHandler.CreateVendorInvoice)
			authorized.POST("/upload", adminHandler.Upload)

			authorized.GET("/payments", adminHandler.ListPayments)
			authorized.POST("/payments", adminHandler.CreatePayment)
			authorized.GET("/payments/export", adminHandler.ExportPayments)
			authorized.POST("/payments/match", adminHandler.MatchPayment)
			authorized.DELETE("/payments/:id", adminHandler.DeletePayment)
			authorized.GET("/payments/:id/candidates", adminHandler.GetPaymentCandidates)
			authorized.PATCH("/payments/:id/status", adminHandler.UpdatePaymentStatus)

			authorized.GET("/bank-transactions", adminHandler.ListBankTransactions)
			authorized.GET("/bank-transactions/platform-summary", adminHandler.GetPlatformDepositSummary)

			authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
			authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildPermissionCatalog(r))
			})
		}
	}

	return r
}

type permissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildPermissionCatalog RBAC で制御されるルートの一覧
func buildPermissionCatalog(engine *gin.Engine) []permissionCatalogItem {
	if engine == nil {
		return []permissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]permissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, apiPrefix+"/") || !isRBACRoute(item.Path) {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, permissionCatalogItem{
			Module:     permissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})
	return items
}

// isRBACRoute 公開ルートとサービスキー専用ルートを除く
func isRBACRoute(path string) bool {
	switch {
	case strings.HasPrefix(path, apiPrefix+"/auth/"):
		return false
	case path == apiPrefix+"/health", path == apiPrefix+"/bank-transactions/import":
		return false
	}
	return true
}

func permissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	return strings.Split(normalized, "/")[0]
}
