package handlers

import (
	"net/http"

	"dealerhub-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SliderHandler struct {
	DB *gorm.DB
}

// GetSlider returns every promotional slider entry for the storefront
// carousel. Entries are created and removed only alongside their vehicle.
func (h *SliderHandler) GetSlider(c *gin.Context) {
	var items []models.SliderItem
	if err := h.DB.Order("created_at DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to fetch slider"})
		return
	}

	c.JSON(http.StatusOK, items)
}
