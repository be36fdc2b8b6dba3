package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessSettings is the single-row business profile printed on invoices.
type BusinessSettings struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessName        string    `gorm:"column:business_name;type:varchar(255);not null"`
	BusinessAddress     string    `gorm:"column:business_address;type:text;not null"`
	BusinessPhoneNumber string    `gorm:"column:business_phone_number;type:varchar(20);not null"`
	BusinessEmail       *string   `gorm:"column:business_email;type:varchar(255)"`
	GSTNumber           *string   `gorm:"column:gst_number;type:varchar(20)"`
	UPIID               string    `gorm:"column:upi_id;type:varchar(50);not null"`
	UPIQRImage          string    `gorm:"column:upi_qr_image;type:varchar(512);not null"`
	Timestamps
}

func (BusinessSettings) TableName() string {
	return "business_settings"
}

func (b *BusinessSettings) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
