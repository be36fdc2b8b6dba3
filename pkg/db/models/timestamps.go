package models

import "time"

// Timestamps is embedded by every persisted entity.
type Timestamps struct {
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}
