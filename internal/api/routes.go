package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mysterymeet/backend/internal/auth"
	"github.com/mysterymeet/backend/internal/ratelimit"
)

func SetupRoutes(r *gin.Engine, handler *Handler, authService *auth.Service, rlMiddleware *ratelimit.Middleware) {
	r.Use(rlMiddleware.IPRateLimit())

	requireAuth := RequireAuth(authService)
	optionalAuth := OptionalAuth(authService)

	api := r.Group("/api")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", handler.Register)
			authGroup.POST("/login", handler.Login)
		}

		// Event routes
		events := api.Group("/events")
		{
			events.GET("", optionalAuth, handler.ListEvents)
			events.POST("", requireAuth, handler.CreateEvent)
			events.GET("/my", requireAuth, handler.ListMyEvents)
			events.GET("/:id", optionalAuth, handler.GetEvent)
			events.DELETE("/:id", requireAuth, handler.DeleteEvent)
			events.POST("/:id/join", requireAuth, handler.JoinEvent)
		}

		// Comment routes
		comments := api.Group("/comments")
		{
			comments.GET("/:eventId", handler.ListComments)
			comments.POST("/:eventId", requireAuth, handler.AddComment)
			comments.DELETE("/:commentId", requireAuth, handler.DeleteComment)
		}

		// Like routes
		likes := api.Group("/likes")
		{
			likes.POST("/:eventId", requireAuth, handler.ToggleLike)
			likes.GET("/:eventId", requireAuth, handler.HasLiked)
			likes.GET("/:eventId/count", handler.CountLikes)
		}

		// Health check (no rate limit concerns beyond IP)
		api.GET("/health", handler.Health)
	}
}
