package api

import (
	authDelivery "consultant-backend/internal/auth/delivery"
	authUsecase "consultant-backend/internal/auth/usecase"
	briefingDelivery "consultant-backend/internal/briefing/delivery"
	clientDelivery "consultant-backend/internal/client/delivery"
	integrationDelivery "consultant-backend/internal/integration/delivery"
	noteDelivery "consultant-backend/internal/note/delivery"
	notificationDelivery "consultant-backend/internal/notification/delivery"
	"consultant-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

// Handler owns the HTTP surface. Everything below it is injected from
// main so there are no package-level singletons.
type Handler struct {
	authUsecase         authUsecase.AuthUsecase
	authHandler         *authDelivery.AuthHandler
	clientHandler       *clientDelivery.ClientHandler
	noteHandler         *noteDelivery.NoteHandler
	briefingHandler     *briefingDelivery.BriefingHandler
	integrationHandler  *integrationDelivery.IntegrationHandler
	notificationHandler *notificationDelivery.NotificationHandler
	config              *config.Config
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	authHandler *authDelivery.AuthHandler,
	clientHandler *clientDelivery.ClientHandler,
	noteHandler *noteDelivery.NoteHandler,
	briefingHandler *briefingDelivery.BriefingHandler,
	integrationHandler *integrationDelivery.IntegrationHandler,
	notificationHandler *notificationDelivery.NotificationHandler,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase:         authUc,
		authHandler:         authHandler,
		clientHandler:       clientHandler,
		noteHandler:         noteHandler,
		briefingHandler:     briefingHandler,
		integrationHandler:  integrationHandler,
		notificationHandler: notificationHandler,
		config:              cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.authHandler, h.clientHandler, h.noteHandler, h.briefingHandler, h.integrationHandler, h.notificationHandler)

	return r.Run(addr)
}
