package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupplierInfo is the supplier composite embedded on a vehicle record.
// OwnerID is the opaque uid of the authenticated supplier who created the
// record and never changes after creation.
type SupplierInfo struct {
	Name    string `gorm:"column:supplier_name;not null" json:"name"`
	OwnerID string `gorm:"column:supplier_owner_id;not null;index" json:"ownerId"`
}

type Vehicle struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Price       float64        `gorm:"not null" json:"price"`
	Quantity    int            `gorm:"default:0" json:"quantity"`
	Image       string         `gorm:"not null" json:"image"`
	Description string         `gorm:"not null" json:"description"`
	Supplier    SupplierInfo   `gorm:"embedded" json:"supplier"`
	TotalSold   int            `gorm:"default:0" json:"totalSold"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"lastModified"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
