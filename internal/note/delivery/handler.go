package delivery

import (
	"net/http"
	"strconv"
	"time"

	"consultant-backend/internal/note/usecase"

	"github.com/gin-gonic/gin"
)

// NoteHandler handles meeting note HTTP requests
type NoteHandler struct {
	noteUsecase usecase.NoteUsecase
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteUsecase usecase.NoteUsecase) *NoteHandler {
	return &NoteHandler{noteUsecase: noteUsecase}
}

// NoteRequest represents the request body for creating/updating a note
type NoteRequest struct {
	ClientName  string `json:"client_name"`
	Content     string `json:"content" binding:"required"`
	MeetingDate string `json:"meeting_date"` // RFC3339, optional
}

// GetNotes returns the user's notes, newest meeting first
// GET /api/notes?limit=50&offset=0
func (h *NoteHandler) GetNotes(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notes, total, err := h.noteUsecase.GetUserNotes(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notes": notes,
		"total": total,
	})
}

// GetNoteByID returns a specific note
// GET /api/notes/:id
func (h *NoteHandler) GetNoteByID(c *gin.Context) {
	userID := c.GetString("userID")
	noteID := c.Param("id")

	note, err := h.noteUsecase.GetNote(userID, noteID)
	if err != nil {
		writeNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// CreateNote creates a new meeting note
// POST /api/notes
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID := c.GetString("userID")

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ClientName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_name is required"})
		return
	}

	meetingDate := parseMeetingDate(req.MeetingDate)
	note, err := h.noteUsecase.CreateNote(userID, req.ClientName, req.Content, meetingDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, note)
}

// UpdateNote updates an existing note
// PUT /api/notes/:id
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID := c.GetString("userID")
	noteID := c.Param("id")

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.noteUsecase.UpdateNote(userID, noteID, req.Content, parseMeetingDate(req.MeetingDate))
	if err != nil {
		writeNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// DeleteNote deletes a note
// DELETE /api/notes/:id
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID := c.GetString("userID")
	noteID := c.Param("id")

	if err := h.noteUsecase.DeleteNote(userID, noteID); err != nil {
		writeNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "note deleted"})
}

// SemanticSearch finds notes by meaning rather than exact words
// POST /api/search/semantic
func (h *NoteHandler) SemanticSearch(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Query string `json:"query" binding:"required"`
		Limit int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notes, err := h.noteUsecase.SemanticSearch(userID, req.Query, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func parseMeetingDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed
	}
	return time.Time{}
}

func writeNoteError(c *gin.Context, err error) {
	switch err.Error() {
	case "note not found":
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case "unauthorized":
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
