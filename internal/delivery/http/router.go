package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sparkmatch/sparkmatch-backend/internal/delivery/http/handler"
	"github.com/sparkmatch/sparkmatch-backend/internal/delivery/http/middleware"
	"github.com/sparkmatch/sparkmatch-backend/internal/metrics"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	matchHandler   *handler.MatchHandler
	chatHandler    *handler.ChatHandler
	authMiddleware *middleware.AuthMiddleware
	allowedOrigins []string
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	matchHandler *handler.MatchHandler,
	chatHandler *handler.ChatHandler,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins []string,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		matchHandler:   matchHandler,
		chatHandler:    chatHandler,
		authMiddleware: authMiddleware,
		allowedOrigins: allowedOrigins,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(r.allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = r.allowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/send-otp", r.authHandler.SendOTP)
			auth.POST("/resend-otp", r.authHandler.ResendOTP)
			auth.POST("/verify-otp", r.authHandler.VerifyOTP)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.POST("/complete-onboarding", r.profileHandler.CompleteOnboarding)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			photos := protected.Group("/photos")
			{
				photos.POST("/upload-url", r.profileHandler.RequestPhotoUpload)
				photos.PUT("/:photo_id/primary", r.profileHandler.SetPrimaryPhoto)
				photos.DELETE("/:photo_id", r.profileHandler.DeletePhoto)
			}

			matches := protected.Group("/matches")
			{
				matches.GET("/discovery", r.matchHandler.Discovery)
				matches.POST("/like", r.matchHandler.Like)
				matches.POST("/pass", r.matchHandler.Pass)
				matches.POST("/super-like", r.matchHandler.SuperLike)
				matches.POST("/undo", r.matchHandler.Undo)
				matches.GET("/who-liked-me", r.matchHandler.WhoLikedMe)
				matches.GET("/matches", r.matchHandler.Matches)
				matches.GET("/:match_id", r.matchHandler.MatchByID)
				matches.DELETE("/:match_id", r.matchHandler.Unmatch)
			}

			chats := protected.Group("/chats")
			{
				chats.GET("", r.chatHandler.ListConversations)
				chats.GET("/:conversation_id/messages", r.chatHandler.Messages)
				chats.POST("/:conversation_id/messages", r.chatHandler.SendMessage)
			}
		}
	}

	return router
}
