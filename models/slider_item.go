package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SliderItem is a promotional carousel entry. Name, SupplierName and Image
// are snapshots of the referenced vehicle taken at creation time and are not
// kept in sync with later vehicle edits. Rows are created and deleted only
// alongside their vehicle.
type SliderItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VehicleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"vehicleId"`
	Name         string         `gorm:"not null" json:"name"`
	SupplierName string         `gorm:"column:supplier_name" json:"supplier"`
	Image        string         `json:"image"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *SliderItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
