package router

import (
	"sort"
	"strings"

	"github.com/tawseel-next/internal/authz"
	"github.com/tawseel-next/internal/cache"
	"github.com/tawseel-next/internal/config"
	adminhandlers "github.com/tawseel-next/internal/http/handlers/admin"
	publichandlers "github.com/tawseel-next/internal/http/handlers/public"
	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/provider"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api"

// SetupRouter builds the engine with every route under /api
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	loginRule := RateLimitRule{
		Prefix:        cache.BuildKey("rate:login"),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	cookieName := cfg.JWT.CookieName
	if cookieName == "" {
		cookieName = shared.DefaultSessionCookie
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", publicHandler.Health)

	api := r.Group(apiPrefix)
	{
		api.GET("/captcha/config", publicHandler.GetCaptchaConfig)
		api.GET("/captcha/image", publicHandler.GetImageCaptcha)
		api.POST("/auth/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)

		// authenticated, no role check
		session := api.Group("/auth")
		session.Use(JWTAuthMiddleware(c.AuthService, cookieName))
		{
			session.GET("/me", adminHandler.GetMe)
			session.POST("/logout", adminHandler.Logout)
			session.PUT("/password", adminHandler.ChangePassword)
		}

		authorized := api.Group("")
		authorized.Use(JWTAuthMiddleware(c.AuthService, cookieName), RBACMiddleware(c.AuthzService))
		{
			authorized.GET("/dashboard/stats", adminHandler.GetDashboardStats)
			authorized.GET("/dashboard/drivers", adminHandler.GetDashboardDrivers)

			authorized.GET("/orders", adminHandler.GetOrders)
			authorized.POST("/orders", adminHandler.CreateOrder)
			authorized.GET("/orders/barcode", adminHandler.GetOrderByBarcode)
			authorized.POST("/orders/bulk-status", adminHandler.BulkUpdateOrderStatus)
			authorized.POST("/orders/bulk-assign", adminHandler.BulkAssignOrders)
			authorized.GET("/orders/:id", adminHandler.GetOrder)
			authorized.PUT("/orders/:id", adminHandler.UpdateOrder)
			authorized.DELETE("/orders/:id", adminHandler.DeleteOrder)
			authorized.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
			authorized.PUT("/orders/:id/driver", adminHandler.AssignOrderDriver)
			authorized.GET("/orders/:id/history", adminHandler.GetOrderHistory)
			authorized.GET("/orders/:id/label.png", adminHandler.GetOrderLabel)

			authorized.GET("/delegate-sheets", adminHandler.GetDelegateSheets)
			authorized.POST("/delegate-sheets", adminHandler.CreateDelegateSheet)
			authorized.GET("/delegate-sheets/scan", adminHandler.ScanDelegateSheetOrder)
			authorized.GET("/delegate-sheets/:id", adminHandler.GetDelegateSheet)
			authorized.GET("/delegate-sheets/:id/qrcode.png", adminHandler.GetDelegateSheetQRCode)
			authorized.GET("/delegate-sheets/:id/print.xlsx", adminHandler.PrintDelegateSheet)

			authorized.GET("/drivers", adminHandler.GetDrivers)
			authorized.POST("/drivers", adminHandler.CreateDriver)
			authorized.GET("/drivers/:id", adminHandler.GetDriver)
			authorized.PUT("/drivers/:id", adminHandler.UpdateDriver)
			authorized.DELETE("/drivers/:id", adminHandler.DeleteDriver)

			authorized.GET("/cities", adminHandler.GetCities)
			authorized.POST("/cities", adminHandler.CreateCity)
			authorized.GET("/cities/:id", adminHandler.GetCity)
			authorized.PUT("/cities/:id", adminHandler.UpdateCity)
			authorized.DELETE("/cities/:id", adminHandler.DeleteCity)

			authorized.GET("/users", adminHandler.GetUsers)
			authorized.POST("/users", adminHandler.CreateUser)
			authorized.GET("/users/:id", adminHandler.GetUser)
			authorized.PUT("/users/:id", adminHandler.UpdateUser)
			authorized.DELETE("/users/:id", adminHandler.DeleteUser)

			authorized.GET("/products", adminHandler.GetProducts)
			authorized.POST("/products", adminHandler.CreateProduct)
			authorized.GET("/products/:id", adminHandler.GetProduct)
			authorized.PUT("/products/:id", adminHandler.UpdateProduct)
			authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
			authorized.POST("/products/:id/stock", adminHandler.AdjustProductStock)

			authorized.POST("/data-management/import", adminHandler.ImportData)
			authorized.GET("/data-management/export", adminHandler.ExportData)
			authorized.GET("/data-management/export/xlsx", adminHandler.ExportDataXLSX)
			authorized.GET("/data-management/template", adminHandler.GetImportTemplate)

			authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
			authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
			authorized.GET("/authz/users/:id/policies", adminHandler.GetAuthzUserPolicies)
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

// buildPermissionCatalog every role-checked route as a casbin object/action pair
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
		if !strings.HasPrefix(item.Path, apiPrefix+"/") || strings.HasPrefix(item.Path, apiPrefix+"/auth/") || strings.HasPrefix(item.Path, apiPrefix+"/captcha/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, permissionCatalogItem{
			Module:     derivePermissionModule(object),
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

func derivePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	return strings.Split(normalized, "/")[0]
}
