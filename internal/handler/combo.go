package handler

import (
	"errors"
	"net/http"
	"strconv"

	"giftme/internal/model"
	"giftme/internal/repository"

	"github.com/gin-gonic/gin"
)

// ComboHandler handles catalog HTTP requests
type ComboHandler struct {
	repo *repository.PostgresRepository
}

// NewComboHandler creates a new combo handler
func NewComboHandler(repo *repository.PostgresRepository) *ComboHandler {
	return &ComboHandler{repo: repo}
}

// List handles GET /api/v1/combos
func (h *ComboHandler) List(c *gin.Context) {
	params := model.ComboListParams{
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 12),
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Occasion: c.Query("occasion"),
		Badge:    c.Query("badge"),
		MinPrice: queryFloat(c, "minPrice", 0),
		MaxPrice: queryFloat(c, "maxPrice", 0),
		SortBy:   c.DefaultQuery("sortBy", "newest"),
	}

	resp, err := h.repo.ListCombos(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list combos: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/v1/combos/:id
func (h *ComboHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	combo, err := h.repo.GetComboByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Combo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get combo: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, combo)
}

// Hot handles GET /api/v1/combos/hot
func (h *ComboHandler) Hot(c *gin.Context) {
	combos, err := h.repo.GetHotCombos(c.Request.Context(), 4)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hot combos: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": combos})
}

// Suggested handles GET /api/v1/combos/:id/suggested
func (h *ComboHandler) Suggested(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	combos, err := h.repo.GetSuggestedCombos(c.Request.Context(), id, 3)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Combo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggested combos: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": combos})
}

// Create handles POST /api/v1/combos
func (h *ComboHandler) Create(c *gin.Context) {
	var input model.ComboInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	combo, err := h.repo.CreateCombo(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create combo: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, combo)
}

// Update handles PUT /api/v1/combos/:id
func (h *ComboHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input model.ComboInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	combo, err := h.repo.UpdateCombo(c.Request.Context(), id, &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Combo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update combo: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, combo)
}

// Delete handles DELETE /api/v1/combos/:id
func (h *ComboHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteCombo(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Combo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete combo: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Combo deleted"})
}

// Shared helpers

// pathID parses the :id path parameter; writes the 400 itself on failure
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, defaultValue int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func queryFloat(c *gin.Context, key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(c.DefaultQuery(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}
