package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"postboard-backend/internal/shared/middleware"
	"postboard-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupGroupRoutes(v1, c)
		setupPostRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
	}

	v1.GET("/profiles/:username/posts", c.PostHandler.ListProfile)
}

// ========================================
// GROUP ROUTES
// ========================================
func setupGroupRoutes(v1 *gin.RouterGroup, c *container.Container) {
	groups := v1.Group("/groups")
	{
		groups.GET("", c.GroupHandler.List)
		groups.GET("/:slug", c.GroupHandler.GetBySlug)
		groups.GET("/:slug/posts", c.PostHandler.ListGroup)
	}
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	posts := v1.Group("/posts")
	{
		posts.GET("", c.PostHandler.ListIndex)
		posts.GET("/:id", c.PostHandler.GetDetail)

		authed := posts.Group("")
		authed.Use(middleware.AuthMiddleware(c.JWTManager))
		authed.POST("", c.PostHandler.Create)
		authed.PUT("/:id", c.PostHandler.Edit)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("/groups", c.GroupHandler.Create)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
		} else if stats, err := appCtx.DB.Stats(); err == nil {
			health["pool"] = stats
		}

		// Redis: lỗi chỉ làm status degraded, không 503
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error: " + err.Error()
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		switch {
		case dbStatus != "ok":
			health["status"] = "unavailable"
			statusCode = http.StatusServiceUnavailable
		case redisStatus != "ok":
			health["status"] = "degraded"
		}

		c.JSON(statusCode, health)
	}
}
