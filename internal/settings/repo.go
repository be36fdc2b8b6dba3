package settings

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db/models"
)

// Repository persists the single business settings row.
type Repository struct {
	client *db.Client
}

func NewRepository(client *db.Client) *Repository {
	return &Repository{client: client}
}

// Get returns the stored settings row, or gorm.ErrRecordNotFound before the first save.
func (r *Repository) Get(ctx context.Context) (*models.BusinessSettings, error) {
	var out models.BusinessSettings
	if err := r.client.DB().WithContext(ctx).Order("created_at ASC").First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Upsert overwrites the existing row in place or inserts the first one.
func (r *Repository) Upsert(ctx context.Context, values *models.BusinessSettings) (*models.BusinessSettings, error) {
	if values == nil {
		return nil, fmt.Errorf("settings are required")
	}
	var saved models.BusinessSettings
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var current models.BusinessSettings
		err := tx.Order("created_at ASC").First(&current).Error
		switch {
		case db.IsNotFound(err):
			saved = *values
			return tx.Create(&saved).Error
		case err != nil:
			return err
		}
		current.BusinessName = values.BusinessName
		current.BusinessAddress = values.BusinessAddress
		current.BusinessPhoneNumber = values.BusinessPhoneNumber
		current.BusinessEmail = values.BusinessEmail
		current.GSTNumber = values.GSTNumber
		current.UPIID = values.UPIID
		current.UPIQRImage = values.UPIQRImage
		if err := tx.Save(&current).Error; err != nil {
			return err
		}
		saved = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
