package handler

import (
	"errors"
	"net/http"

	"giftme/internal/model"
	"giftme/internal/repository"

	"github.com/gin-gonic/gin"
)

// ContentHandler handles homepage content block HTTP requests
type ContentHandler struct {
	repo *repository.PostgresRepository
}

// NewContentHandler creates a new content handler
func NewContentHandler(repo *repository.PostgresRepository) *ContentHandler {
	return &ContentHandler{repo: repo}
}

// List handles GET /api/v1/content. The public storefront passes nothing and
// sees enabled blocks only; the back office passes ?all=true.
func (h *ContentHandler) List(c *gin.Context) {
	enabledOnly := c.Query("all") != "true"

	blocks, err := h.repo.ListContent(c.Request.Context(), enabledOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list content: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": blocks})
}

// Create handles POST /api/v1/content
func (h *ContentHandler) Create(c *gin.Context) {
	var input model.ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	block, err := h.repo.CreateContent(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, block)
}

// Update handles PUT /api/v1/content/:id
func (h *ContentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input model.ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	block, err := h.repo.UpdateContent(c.Request.Context(), id, &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content block not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, block)
}

// Delete handles DELETE /api/v1/content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteContent(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content block not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content block deleted"})
}
