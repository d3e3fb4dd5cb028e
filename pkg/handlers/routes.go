package handlers

import (
	"time"

	"github.com/ASHISH26940/pintunes-api/pkg/middleware"
	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires every route onto a new gin engine.
func SetupRouter(h *Handlers, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Client-Info", "Apikey"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", HealthCheck)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.LoginUser)
	}

	protectedRoutes := router.Group("/api")
	protectedRoutes.Use(middleware.AuthMiddleware(h.Tokens))
	{
		protectedRoutes.GET("/profile", h.Profile)
		protectedRoutes.POST("/delete", h.DeleteUser)

		playlistRoutes := protectedRoutes.Group("/playlists")
		{
			playlistRoutes.POST("/generate", h.GeneratePlaylist) // POST /api/playlists/generate
			playlistRoutes.GET("", h.GetUserPlaylists)           // GET /api/playlists
			playlistRoutes.GET("/:id", h.GetPlaylistByID)        // GET /api/playlists/:id
		}
	}

	return router
}
