package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"dealerhub-backend/middleware"
	"dealerhub-backend/models"
	"dealerhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")

	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	// Limit to 1 open connection to prevent SQLite concurrent access issues
	// with in-memory databases. All goroutines (including the concurrent
	// delivery tests) share the same connection and see the same tables.
	sqlDB, _ := testDB.DB()
	sqlDB.SetMaxOpenConns(1)

	// Create tables using raw SQLite-compatible SQL instead of AutoMigrate,
	// because the GORM model tags use PostgreSQL-specific defaults like gen_random_uuid().
	if err := createSQLiteTables(testDB); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	code := m.Run()
	os.Exit(code)
}

// freshDB returns a clean database for each test by deleting all rows.
func freshDB() *gorm.DB {
	testDB.Exec("DELETE FROM slider_items")
	testDB.Exec("DELETE FROM vehicles")
	testDB.Exec("DELETE FROM suppliers")
	return testDB
}

// createSQLiteTables creates all tables with SQLite-compatible DDL.
func createSQLiteTables(db *gorm.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS "suppliers" (
			"id" TEXT PRIMARY KEY,
			"uid" TEXT NOT NULL UNIQUE,
			"email" TEXT NOT NULL,
			"name" TEXT,
			"password_hash" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_suppliers_deleted_at ON "suppliers"("deleted_at")`,

		`CREATE TABLE IF NOT EXISTS "vehicles" (
			"id" TEXT PRIMARY KEY,
			"name" TEXT NOT NULL,
			"price" REAL NOT NULL,
			"quantity" INTEGER DEFAULT 0,
			"image" TEXT NOT NULL,
			"description" TEXT NOT NULL,
			"supplier_name" TEXT NOT NULL,
			"supplier_owner_id" TEXT NOT NULL,
			"total_sold" INTEGER DEFAULT 0,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_vehicles_deleted_at ON "vehicles"("deleted_at")`,
		`CREATE INDEX IF NOT EXISTS idx_vehicles_supplier_owner_id ON "vehicles"("supplier_owner_id")`,

		`CREATE TABLE IF NOT EXISTS "slider_items" (
			"id" TEXT PRIMARY KEY,
			"vehicle_id" TEXT NOT NULL,
			"name" TEXT NOT NULL,
			"supplier_name" TEXT,
			"image" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_slider_items_deleted_at ON "slider_items"("deleted_at")`,
		`CREATE INDEX IF NOT EXISTS idx_slider_items_vehicle_id ON "slider_items"("vehicle_id")`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedSupplierToken returns a valid JWT token for the given supplier uid.
func seedSupplierToken(uid, email string) string {
	token, _ := utils.GenerateToken(uid, email)
	return token
}

// seedVehicle creates a test vehicle owned by ownerID.
func seedVehicle(db *gorm.DB, name, ownerID string, quantity int) models.Vehicle {
	v := models.Vehicle{
		ID:          uuid.New(),
		Name:        name,
		Price:       25000,
		Quantity:    quantity,
		Image:       "https://cdn.example.com/cars/" + uuid.New().String()[:8] + ".jpg",
		Description: "A reliable vehicle",
		Supplier: models.SupplierInfo{
			Name:    "Test Motors",
			OwnerID: ownerID,
		},
	}
	db.Create(&v)
	return v
}

// seedSliderItem creates a slider entry referencing the given vehicle.
func seedSliderItem(db *gorm.DB, v models.Vehicle) models.SliderItem {
	item := models.SliderItem{
		ID:           uuid.New(),
		VehicleID:    v.ID,
		Name:         v.Name,
		SupplierName: v.Supplier.Name,
		Image:        v.Image,
	}
	db.Create(&item)
	return item
}

// ==================== Router Setup Helpers ====================

// setupAuthRouter sets up routes for auth handler tests.
func setupAuthRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	authHandler := &AuthHandler{DB: db}

	api := r.Group("/api")
	api.POST("/login", authHandler.Login)

	return r
}

// setupVehicleRouter sets up all vehicle and slider routes for tests.
func setupVehicleRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	vehicleHandler := &VehicleHandler{DB: db}
	sliderHandler := &SliderHandler{DB: db}

	api := r.Group("/api")

	// Public routes
	api.GET("/slider", sliderHandler.GetSlider)
	api.GET("/carShowcase", vehicleHandler.GetShowcase)
	api.GET("/latestCars", vehicleHandler.GetLatest)
	api.GET("/carcount", vehicleHandler.GetCount)
	api.GET("/inventory/:id", vehicleHandler.GetVehicle)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	protected.POST("/addCar", vehicleHandler.AddCar)
	protected.GET("/inventory", vehicleHandler.GetInventory)
	protected.GET("/userInventory", vehicleHandler.GetUserInventory)
	protected.DELETE("/inventory", vehicleHandler.DeleteVehicle)
	protected.POST("/updateDelivery", vehicleHandler.UpdateDelivery)
	protected.POST("/updateStock", vehicleHandler.UpdateStock)

	return r
}

// ==================== Request Helpers ====================

// jsonRequest creates an HTTP request with JSON body.
func jsonRequest(method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// authRequest creates an HTTP request with JSON body and Authorization header.
func authRequest(method, url string, body interface{}, token string) *http.Request {
	req := jsonRequest(method, url, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// ==================== Response Helpers ====================

// parseResponse reads the response body into a map.
func parseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// parseResponseArray reads the response body into a slice of maps.
func parseResponseArray(w *httptest.ResponseRecorder) []interface{} {
	var result []interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// validCarData builds a well-formed addCar payload owned by ownerID.
func validCarData(ownerID string, isSlider bool) map[string]interface{} {
	return map[string]interface{}{
		"carData": map[string]interface{}{
			"name":        "Aurora GT",
			"price":       42500.0,
			"quantity":    3,
			"image":       "https://cdn.example.com/cars/aurora-gt.jpg",
			"description": "Twin-turbo coupe, one owner",
			"supplier": map[string]interface{}{
				"name":    "Aurora Motors",
				"ownerId": ownerID,
			},
			"isSlider": isSlider,
		},
	}
}
