package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/service"
)

// SetupRoutes wires every handler onto the router. All admin and library
// routes require the admin role; client routes require the client role.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	adminService service.AdminService,
	clientService service.ClientService,
	libraryService service.LibraryService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	adminHandler := NewAdminHandler(adminService)
	clientHandler := NewClientHandler(clientService)
	libraryHandler := NewLibraryHandler(libraryService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)
		protected.PUT("/me/profile", profileHandler.UpdateProfile)
		protected.POST("/me/avatar", profileHandler.UploadAvatar)
		protected.POST("/me/logo", profileHandler.UploadLogo)

		// --- Admin Routes ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			// Client roster
			adminGroup.POST("/clients", adminHandler.CreateClient)
			adminGroup.GET("/clients", adminHandler.GetClients)
			adminGroup.GET("/clients/:id", adminHandler.GetClient)
			adminGroup.PUT("/clients/:id", adminHandler.UpdateClient)
			adminGroup.DELETE("/clients/:id", adminHandler.DeleteClient)

			// Task assignment
			adminGroup.POST("/tasks", adminHandler.AssignTask)
			adminGroup.GET("/tasks", adminHandler.GetTasks)
			adminGroup.POST("/tasks/:id/toggle", adminHandler.ToggleTask)
			adminGroup.DELETE("/tasks/:id", adminHandler.DeleteTask)

			// Dashboard
			adminGroup.GET("/analytics", adminHandler.GetAnalytics)
		}

		// --- Content Library Routes (admin only) ---
		libraryGroup := protected.Group("/library")
		libraryGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			libraryGroup.POST("/videos", libraryHandler.CreateVideo)
			libraryGroup.GET("/videos", libraryHandler.GetVideos)
			libraryGroup.PUT("/videos/:id", libraryHandler.UpdateVideo)
			libraryGroup.DELETE("/videos/:id", libraryHandler.DeleteVideo)

			libraryGroup.POST("/exercises", libraryHandler.CreateExercise)
			libraryGroup.GET("/exercises", libraryHandler.GetExercises)
			libraryGroup.PUT("/exercises/:id", libraryHandler.UpdateExercise)
			libraryGroup.DELETE("/exercises/:id", libraryHandler.DeleteExercise)

			libraryGroup.POST("/documents", libraryHandler.UploadDocument)
			libraryGroup.GET("/documents", libraryHandler.GetDocuments)
			libraryGroup.PUT("/documents/:id", libraryHandler.UpdateDocument)
			libraryGroup.DELETE("/documents/:id", libraryHandler.DeleteDocument)
		}

		// --- Client Routes ---
		clientGroup := protected.Group("/client")
		clientGroup.Use(RoleMiddleware(domain.RoleClient))
		{
			clientGroup.GET("/tasks", clientHandler.GetMyTasks)
			clientGroup.GET("/tasks/:id", clientHandler.GetTask)
			clientGroup.POST("/tasks/:id/toggle", clientHandler.ToggleTask)
			clientGroup.POST("/tasks/:id/photo", clientHandler.SubmitPhoto)
			clientGroup.GET("/progress", clientHandler.GetProgress)
		}
	}
}
