package handlers

import (
	"log"
	"net/http"
	"time"

	"dealerhub-backend/middleware"
	"dealerhub-backend/models"
	"dealerhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleHandler struct {
	DB *gorm.DB
}

const (
	defaultPageSize = 10
	showcaseLimit   = 6
	latestCarsLimit = 6
)

// carPayload is the addCar request body. Price and quantity are decoded
// loosely because storefront clients send them either as numbers or as
// numeric strings.
type carPayload struct {
	Name        string      `json:"name"`
	Price       interface{} `json:"price"`
	Quantity    interface{} `json:"quantity"`
	Image       string      `json:"image"`
	Description string      `json:"description"`
	Supplier    struct {
		Name    string `json:"name"`
		OwnerID string `json:"ownerId"`
	} `json:"supplier"`
	IsSlider bool `json:"isSlider"`
}

// AddCar inserts a vehicle record and, when requested, links it into the
// promotional slider. The slider link is best-effort: if it fails the
// vehicle stays persisted and the response carries sliderInsertionFailed.
func (h *VehicleHandler) AddCar(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		CarData carPayload `json:"carData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	data := req.CarData

	// Ownership is decided before any field validation so a forged supplier
	// id gets the same rejection whether or not the rest of the body is valid.
	if data.Supplier.OwnerID != "" && data.Supplier.OwnerID != claims.UID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: supplier does not match authenticated user"})
		return
	}

	if data.Name == "" || data.Image == "" || data.Description == "" ||
		data.Supplier.Name == "" || data.Supplier.OwnerID == "" ||
		data.Price == nil || data.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required car data"})
		return
	}

	if !utils.IsURL(data.Image) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be a valid URL"})
		return
	}

	price, ok := utils.CoerceFloat(data.Price)
	if !ok || price <= 0 {
		c.JSON(http.StatusNotAcceptable, gin.H{"error": "price must be a positive number"})
		return
	}
	quantity, ok := utils.CoerceInt(data.Quantity)
	if !ok || quantity < 0 {
		c.JSON(http.StatusNotAcceptable, gin.H{"error": "quantity must be a non-negative integer"})
		return
	}

	vehicle := models.Vehicle{
		Name:        data.Name,
		Price:       price,
		Quantity:    quantity,
		Image:       data.Image,
		Description: data.Description,
		Supplier: models.SupplierInfo{
			Name:    data.Supplier.Name,
			OwnerID: data.Supplier.OwnerID,
		},
		TotalSold: 0,
	}

	if err := h.DB.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to insert vehicle"})
		return
	}

	resp := gin.H{"car": vehicle}

	if data.IsSlider {
		item := models.SliderItem{
			VehicleID:    vehicle.ID,
			Name:         vehicle.Name,
			SupplierName: vehicle.Supplier.Name,
			Image:        vehicle.Image,
		}
		if err := h.DB.Create(&item).Error; err != nil {
			// Vehicle durability wins over slider consistency; the caller
			// retries the link out of band.
			log.Printf("Slider insertion failed for vehicle %s: %v", vehicle.ID, err)
			resp["sliderInsertionFailed"] = true
		} else {
			resp["slider"] = item
		}
	}

	c.JSON(http.StatusCreated, resp)
}

// GetInventory returns one page of the full inventory.
// page and size fall back to 0/10 when absent or non-numeric.
func (h *VehicleHandler) GetInventory(c *gin.Context) {
	page := utils.QueryInt(c.Query("page"), 0)
	size := utils.QueryInt(c.Query("size"), defaultPageSize)
	if size == 0 {
		size = defaultPageSize
	}

	var vehicles []models.Vehicle
	if err := h.DB.Offset(page * size).Limit(size).Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetUserInventory lists the vehicles owned by the authenticated supplier.
func (h *VehicleHandler) GetUserInventory(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	uid := c.Query("uid")
	if uid == "" || uid != claims.UID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: uid does not match authenticated user"})
		return
	}

	var vehicles []models.Vehicle
	if err := h.DB.Where("supplier_owner_id = ?", uid).Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch supplier inventory"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetVehicle returns a single vehicle. A malformed id is a 404, a
// well-formed but unknown id a 406.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid vehicle id format"})
		return
	}

	var vehicle models.Vehicle
	if err := h.DB.Where("id = ?", id).First(&vehicle).Error; err != nil {
		c.JSON(http.StatusNotAcceptable, gin.H{"error": "Incorrect vehicle id"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// GetShowcase returns up to 6 vehicles in store order for the landing page.
func (h *VehicleHandler) GetShowcase(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := h.DB.Limit(showcaseLimit).Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to fetch showcase"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetLatest returns the 6 most recently modified vehicles.
func (h *VehicleHandler) GetLatest(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := h.DB.Order("updated_at DESC").Limit(latestCarsLimit).Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch latest cars"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetCount returns the total number of vehicle records.
func (h *VehicleHandler) GetCount(c *gin.Context) {
	var count int64
	if err := h.DB.Model(&models.Vehicle{}).Count(&count).Error; err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to count vehicles"})
		return
	}

	c.JSON(http.StatusOK, count)
}

// UpdateDelivery records one delivered unit: quantity down, totalSold up.
// The update is a single conditional statement so two concurrent deliveries
// never both consume the last unit.
func (h *VehicleHandler) UpdateDelivery(c *gin.Context) {
	var req struct {
		PostData string `json:"postData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := uuid.Parse(req.PostData)
	if err != nil {
		c.JSON(http.StatusNotAcceptable, gin.H{"error": "Invalid vehicle id"})
		return
	}

	res := h.DB.Model(&models.Vehicle{}).
		Where("id = ? AND quantity > 0", id).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - 1"),
			"total_sold": gorm.Expr("total_sold + 1"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to record delivery"})
		return
	}

	if res.RowsAffected == 0 {
		var vehicle models.Vehicle
		if err := h.DB.Where("id = ?", id).First(&vehicle).Error; err != nil {
			c.JSON(http.StatusNotAcceptable, gin.H{"error": "Incorrect vehicle id"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Vehicle out of stock"})
		return
	}

	var vehicle models.Vehicle
	if err := h.DB.Where("id = ?", id).First(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delivery recorded but failed to load vehicle"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// UpdateStock restocks a vehicle by a positive amount.
func (h *VehicleHandler) UpdateStock(c *gin.Context) {
	var req struct {
		PostData struct {
			ID        string      `json:"id"`
			RestockBy interface{} `json:"restockBy"`
		} `json:"postData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := uuid.Parse(req.PostData.ID)
	if err != nil {
		c.JSON(http.StatusNotAcceptable, gin.H{"error": "Invalid vehicle id"})
		return
	}

	amount, ok := utils.CoerceInt(req.PostData.RestockBy)
	if !ok || amount <= 0 {
		c.JSON(http.StatusNotAcceptable, gin.H{"error": "restockBy must be a positive integer"})
		return
	}

	res := h.DB.Model(&models.Vehicle{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", amount),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock vehicle"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotAcceptable, gin.H{"error": "Incorrect vehicle id"})
		return
	}

	var vehicle models.Vehicle
	if err := h.DB.Where("id = ?", id).First(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Restocked but failed to load vehicle"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle removes a vehicle and its slider entry as one unit. Either
// both rows are gone after this call or neither is.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusNotAcceptable, gin.H{"error": "Missing vehicle id"})
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		c.JSON(http.StatusNotAcceptable, gin.H{"error": "Invalid vehicle id"})
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	// Zero slider rows deleted is fine - not every vehicle is on the slider.
	if err := tx.Where("vehicle_id = ?", id).Delete(&models.SliderItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}

	res := tx.Delete(&models.Vehicle{}, "id = ?", id)
	if res.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	if res.RowsAffected == 0 {
		// Vehicle never existed; roll back so the slider delete above is
		// undone as well.
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}
