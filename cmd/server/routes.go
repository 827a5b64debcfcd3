package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"user-hub.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	healthHandler *handlers.HealthHandler
	userHandler   *handlers.UserHandler
	verifyHandler *handlers.VerifyHandler
	basicAuth     gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.HandleMethodNotAllowed = true

	r.GET("/healthz", d.healthHandler.Healthz)
	r.GET("/ping", d.healthHandler.Ping)

	v1 := r.Group("/v1")
	{
		v1.POST("/user", d.userHandler.CreateUser)

		self := v1.Group("/user/self")
		self.Use(d.basicAuth)
		{
			self.GET("", d.userHandler.GetSelf)
			self.PUT("", d.userHandler.UpdateSelf)
		}

		v1.GET("/verify", d.verifyHandler.VerifyUser)
	}

	// Any unmatched path is a plain 404.
	r.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
