package router

import (
	"fmt"
	"strings"

	"github.com/vendor-payments/internal/cache"
	"github.com/vendor-payments/internal/config"
	adminhandlers "github.com/vendor-payments/internal/http/handlers/admin"
	publichandlers "github.com/vendor-payments/internal/http/handlers/public"
	vendorhandlers "github.com/vendor-payments/internal/http/handlers/vendor"
	"github.com/vendor-payments/internal/logger"
	"github.com/vendor-payments/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	vendorHandler := vendorhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "vp"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	vendorLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:vendor_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		// 商城平台事件回调
		apiV1.POST("/webhooks/orders/completed", publicHandler.OrderCompletedWebhook)

		// 供应商端接口
		vendorGroup := apiV1.Group("/vendor")
		{
			vendorGroup.POST("/login", RateLimitMiddleware(redisClient, vendorLoginRule, KeyByIPAndJSONField("email")), vendorHandler.VendorLogin)

			authed := vendorGroup.Group("")
			authed.Use(VendorJWTAuthMiddleware(cfg.VendorJWT.SecretKey, c.VendorRepo))
			{
				authed.GET("/me", vendorHandler.GetVendorProfile)
				authed.GET("/payments", vendorHandler.GetVendorPayments)
				authed.GET("/payments/:id", vendorHandler.GetVendorPayment)
			}
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要 JWT 鉴权的接口
			authed := admin.Group("")
			authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			authed.Use(AdminRBACMiddleware(c.AuthzService))
			{
				authed.PUT("/password", adminHandler.UpdateAdminPassword)
				authed.GET("/anti-forgery-token", adminHandler.GetAntiForgeryToken)

				// 付款记录
				authed.GET("/payments", adminHandler.GetAdminPayments)
				authed.GET("/payments/export", adminHandler.ExportAdminPayments)
				authed.GET("/payments/:id", adminHandler.GetAdminPayment)
				authed.PATCH("/payments/:id/status", AntiForgeryMiddleware(cache.ConsumeAntiForgeryToken), adminHandler.UpdateVendorPaymentStatus)

				// 订单镜像
				authed.GET("/orders", adminHandler.GetAdminOrders)
				authed.GET("/orders/:id", adminHandler.GetAdminOrder)

				// 商品
				authed.GET("/products", adminHandler.GetAdminProducts)
				authed.POST("/products", adminHandler.CreateAdminProduct)
				authed.GET("/products/:id", adminHandler.GetAdminProduct)
				authed.PUT("/products/:id", adminHandler.UpdateAdminProduct)
				authed.DELETE("/products/:id", adminHandler.DeleteAdminProduct)
				authed.PATCH("/products/:id/vendor-config", adminHandler.SaveAdminProductVendorConfig)

				// 供应商账户
				authed.GET("/vendors", adminHandler.GetAdminVendors)
				authed.POST("/vendors", adminHandler.CreateAdminVendor)
				authed.GET("/vendors/:id", adminHandler.GetAdminVendor)
				authed.PUT("/vendors/:id", adminHandler.UpdateAdminVendor)

				// 管理员与角色
				authed.GET("/admins", adminHandler.GetAdmins)
				authed.GET("/authz/roles", adminHandler.GetAuthzRoles)
				authed.GET("/admins/:id/roles", adminHandler.GetAdminRoles)
				authed.PUT("/admins/:id/roles", adminHandler.SetAdminRoles)
			}
		}
	}

	return r
}
