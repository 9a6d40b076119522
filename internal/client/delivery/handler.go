package delivery

import (
	"net/http"

	"consultant-backend/internal/client/usecase"

	"github.com/gin-gonic/gin"
)

// ClientHandler handles client HTTP requests
type ClientHandler struct {
	clientUsecase usecase.ClientUsecase
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientUsecase usecase.ClientUsecase) *ClientHandler {
	return &ClientHandler{clientUsecase: clientUsecase}
}

// ClientRequest represents the request body for creating/updating a client
type ClientRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// GetClients returns all clients for the authenticated user
// GET /api/clients
func (h *ClientHandler) GetClients(c *gin.Context) {
	userID := c.GetString("userID")

	clients, err := h.clientUsecase.GetUserClients(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// GetClientByID returns a specific client
// GET /api/clients/:id
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	userID := c.GetString("userID")
	clientID := c.Param("id")

	client, err := h.clientUsecase.GetClient(userID, clientID)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// CreateClient creates a new client
// POST /api/clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	userID := c.GetString("userID")

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.clientUsecase.CreateClient(userID, req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, client)
}

// UpdateClient updates an existing client
// PUT /api/clients/:id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	userID := c.GetString("userID")
	clientID := c.Param("id")

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.clientUsecase.UpdateClient(userID, clientID, req.Name, req.Description)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient deletes a client
// DELETE /api/clients/:id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	userID := c.GetString("userID")
	clientID := c.Param("id")

	if err := h.clientUsecase.DeleteClient(userID, clientID); err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}

// AddMember adds a user to a client
// POST /api/clients/:id/members
func (h *ClientHandler) AddMember(c *gin.Context) {
	userID := c.GetString("userID")
	clientID := c.Param("id")

	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.clientUsecase.AddMember(userID, clientID, req.UserID); err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member added"})
}

func writeUsecaseError(c *gin.Context, err error) {
	switch err.Error() {
	case "client not found":
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case "unauthorized":
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
