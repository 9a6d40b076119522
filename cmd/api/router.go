package api

import (
	"net/http"

	authDelivery "consultant-backend/internal/auth/delivery"
	authUsecase "consultant-backend/internal/auth/usecase"
	briefingDelivery "consultant-backend/internal/briefing/delivery"
	clientDelivery "consultant-backend/internal/client/delivery"
	integrationDelivery "consultant-backend/internal/integration/delivery"
	noteDelivery "consultant-backend/internal/note/delivery"
	notificationDelivery "consultant-backend/internal/notification/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUc authUsecase.AuthUsecase,
	authHandler *authDelivery.AuthHandler,
	clientHandler *clientDelivery.ClientHandler,
	noteHandler *noteDelivery.NoteHandler,
	briefingHandler *briefingDelivery.BriefingHandler,
	integrationHandler *integrationDelivery.IntegrationHandler,
	notificationHandler *notificationDelivery.NotificationHandler,
) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authDelivery.AuthMiddleware(authUc), authHandler.Me)
		}

		// Client routes (protected)
		clients := api.Group("/clients")
		clients.Use(authDelivery.AuthMiddleware(authUc))
		{
			clients.GET("", clientHandler.GetClients)
			clients.POST("", clientHandler.CreateClient)
			clients.GET("/:id", clientHandler.GetClientByID)
			clients.PUT("/:id", clientHandler.UpdateClient)
			clients.DELETE("/:id", clientHandler.DeleteClient)
			clients.POST("/:id/members", clientHandler.AddMember)
		}

		// Meeting note routes (protected)
		notes := api.Group("/notes")
		notes.Use(authDelivery.AuthMiddleware(authUc))
		{
			notes.GET("", noteHandler.GetNotes)
			notes.POST("", noteHandler.CreateNote)
			notes.GET("/:id", noteHandler.GetNoteByID)
			notes.PUT("/:id", noteHandler.UpdateNote)
			notes.DELETE("/:id", noteHandler.DeleteNote)
		}

		// Search routes (protected)
		search := api.Group("/search")
		search.Use(authDelivery.AuthMiddleware(authUc))
		{
			search.POST("/semantic", noteHandler.SemanticSearch)
		}

		// Briefing routes (protected)
		briefings := api.Group("/briefings")
		briefings.Use(authDelivery.AuthMiddleware(authUc))
		{
			briefings.GET("", briefingHandler.GetBriefings)
			briefings.POST("/generate", briefingHandler.Generate)
			briefings.GET("/:id", briefingHandler.GetBriefingByID)
			briefings.DELETE("/:id", briefingHandler.DeleteBriefing)
		}

		// Google Calendar integration routes (protected)
		if integrationHandler != nil {
			google := api.Group("/integrations/google")
			google.Use(authDelivery.AuthMiddleware(authUc))
			{
				google.GET("/authorize", integrationHandler.GetAuthorizationURL)
				google.GET("/callback", integrationHandler.Callback)
				google.GET("/meetings", integrationHandler.UpcomingMeetings)
				google.DELETE("", integrationHandler.Disconnect)
			}
		}

		// Device token routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(authDelivery.AuthMiddleware(authUc))
		{
			notifications.POST("/tokens", notificationHandler.RegisterToken)
			notifications.DELETE("/tokens/:token", notificationHandler.UnregisterToken)
		}
	}
}
