package handler

import (
	"errors"
	"net/http"

	"giftme/internal/model"
	"giftme/internal/repository"

	"github.com/gin-gonic/gin"
)

// NewsHandler handles news/blog HTTP requests
type NewsHandler struct {
	repo *repository.PostgresRepository
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(repo *repository.PostgresRepository) *NewsHandler {
	return &NewsHandler{repo: repo}
}

// List handles GET /api/v1/news
func (h *NewsHandler) List(c *gin.Context) {
	params := model.ListParams{
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
		Search: c.Query("search"),
	}

	resp, err := h.repo.ListNews(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list news: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/v1/news/:id
func (h *NewsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	article, err := h.repo.GetNewsByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get article: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, article)
}

// Create handles POST /api/v1/news
func (h *NewsHandler) Create(c *gin.Context) {
	var input model.NewsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	article, err := h.repo.CreateNews(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, article)
}

// Update handles PUT /api/v1/news/:id
func (h *NewsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input model.NewsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	article, err := h.repo.UpdateNews(c.Request.Context(), id, &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /api/v1/news/:id
func (h *NewsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteNews(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}
