package delivery

import (
	"net/http"
	"strconv"

	"consultant-backend/internal/integration/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IntegrationHandler handles calendar integration HTTP requests
type IntegrationHandler struct {
	vault    *usecase.CredentialVault
	reader   *usecase.CalendarReader
	provider usecase.CalendarProvider
}

// NewIntegrationHandler creates a new IntegrationHandler
func NewIntegrationHandler(vault *usecase.CredentialVault, reader *usecase.CalendarReader, provider usecase.CalendarProvider) *IntegrationHandler {
	return &IntegrationHandler{
		vault:    vault,
		reader:   reader,
		provider: provider,
	}
}

// GetAuthorizationURL returns the Google consent URL
// GET /api/integrations/google/authorize
func (h *IntegrationHandler) GetAuthorizationURL(c *gin.Context) {
	state := uuid.New().String()
	c.JSON(http.StatusOK, gin.H{
		"authorization_url": h.provider.AuthCodeURL(state),
		"state":             state,
	})
}

// Callback finishes the OAuth flow: exchanges the code and stores the bundle
// GET /api/integrations/google/callback?code=...
func (h *IntegrationHandler) Callback(c *gin.Context) {
	userID := c.GetString("userID")

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	cred, err := h.provider.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "code exchange failed: " + err.Error()})
		return
	}

	if err := h.vault.Store(userID, cred); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "calendar connected"})
}

// UpcomingMeetings lists the user's next meetings
// GET /api/integrations/google/meetings?limit=10
func (h *IntegrationHandler) UpcomingMeetings(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	meetings, err := h.reader.ListUpcoming(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meetings": meetings})
}

// Disconnect removes the stored credential bundle
// DELETE /api/integrations/google
func (h *IntegrationHandler) Disconnect(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.vault.Disconnect(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "calendar disconnected"})
}
