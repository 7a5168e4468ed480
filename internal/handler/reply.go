package handler

import (
	"errors"
	"net/http"

	"giftme/internal/model"
	"giftme/internal/repository"

	"github.com/gin-gonic/gin"
)

// ReplyHandler handles keyword-record HTTP requests for the back office
type ReplyHandler struct {
	repo *repository.PostgresRepository
}

// NewReplyHandler creates a new reply handler
func NewReplyHandler(repo *repository.PostgresRepository) *ReplyHandler {
	return &ReplyHandler{repo: repo}
}

// List handles GET /api/v1/bot
func (h *ReplyHandler) List(c *gin.Context) {
	params := model.ListParams{
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
		Search: c.Query("search"),
	}

	resp, err := h.repo.ListReplies(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list replies: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/v1/bot
func (h *ReplyHandler) Create(c *gin.Context) {
	var input model.BotReplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reply, err := h.repo.CreateReply(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// Update handles PUT /api/v1/bot/:id
func (h *ReplyHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input model.BotReplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reply, err := h.repo.UpdateReply(c.Request.Context(), id, &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reply not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reply: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// Delete handles DELETE /api/v1/bot/:id
func (h *ReplyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteReply(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reply not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reply: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted"})
}
