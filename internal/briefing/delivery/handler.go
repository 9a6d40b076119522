package delivery

import (
	"net/http"
	"strconv"
	"time"

	"consultant-backend/internal/briefing/repository"
	"consultant-backend/internal/briefing/usecase"

	"github.com/gin-gonic/gin"
)

// BriefingHandler handles briefing HTTP requests
type BriefingHandler struct {
	briefingRepo repository.BriefingRepository
	workers      *usecase.WorkerService
}

// NewBriefingHandler creates a new BriefingHandler
func NewBriefingHandler(briefingRepo repository.BriefingRepository, workers *usecase.WorkerService) *BriefingHandler {
	return &BriefingHandler{
		briefingRepo: briefingRepo,
		workers:      workers,
	}
}

// GenerateRequest represents a manual briefing generation trigger
type GenerateRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	MeetingDate string `json:"meeting_date"` // RFC3339 or YYYY-MM-DD, defaults to now
}

// GetBriefings returns the user's briefings, newest first
// GET /api/briefings?limit=20&offset=0
func (h *BriefingHandler) GetBriefings(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	briefings, total, err := h.briefingRepo.FindByUser(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"briefings": briefings,
		"total":     total,
	})
}

// GetBriefingByID returns a specific briefing
// GET /api/briefings/:id
func (h *BriefingHandler) GetBriefingByID(c *gin.Context) {
	userID := c.GetString("userID")
	briefingID := c.Param("id")

	briefing, err := h.briefingRepo.FindByID(briefingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if briefing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "briefing not found"})
		return
	}
	if briefing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, briefing)
}

// DeleteBriefing deletes a briefing
// DELETE /api/briefings/:id
func (h *BriefingHandler) DeleteBriefing(c *gin.Context) {
	userID := c.GetString("userID")
	briefingID := c.Param("id")

	briefing, err := h.briefingRepo.FindByID(briefingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if briefing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "briefing not found"})
		return
	}
	if briefing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.briefingRepo.Delete(briefingID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "briefing deleted"})
}

// Generate queues a briefing generation manually. The worker applies
// the same freshness window the scheduler does.
// POST /api/briefings/generate
func (h *BriefingHandler) Generate(c *gin.Context) {
	userID := c.GetString("userID")

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meetingDate := time.Now()
	if req.MeetingDate != "" {
		if parsed, err := time.Parse(time.RFC3339, req.MeetingDate); err == nil {
			meetingDate = parsed
		} else if parsed, err := time.Parse("2006-01-02", req.MeetingDate); err == nil {
			meetingDate = parsed
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "meeting_date must be RFC3339 or YYYY-MM-DD"})
			return
		}
	}

	queued := h.workers.QueueJob(usecase.Job{
		UserID:      userID,
		ClientName:  req.ClientName,
		MeetingDate: meetingDate,
	})
	if !queued {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "briefing queue is full, try again later"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "briefing generation started"})
}
