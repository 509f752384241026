package handlers

import (
	"errors"
	"net/http"

	"dealerhub-backend/models"
	"dealerhub-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB *gorm.DB
}

// Login issues a 24-hour access token for the presented supplier identity
// and records the supplier. The seeded admin account additionally requires
// its password; ordinary suppliers authenticate with email + uid only.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		UID      string `json:"uid" binding:"required"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var supplier models.Supplier
	err := h.DB.Where("uid = ?", req.UID).First(&supplier).Error
	switch {
	case err == nil:
		if supplier.PasswordHash != "" {
			if bcrypt.CompareHashAndPassword([]byte(supplier.PasswordHash), []byte(req.Password)) != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
		}
		if supplier.Email != req.Email {
			supplier.Email = req.Email
			if err := h.DB.Save(&supplier).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier"})
				return
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		supplier = models.Supplier{UID: req.UID, Email: req.Email}
		if err := h.DB.Create(&supplier).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record supplier"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up supplier"})
		return
	}

	token, err := utils.GenerateToken(req.UID, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"accessToken": token})
}
