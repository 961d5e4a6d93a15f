package models

import (
	"time"
)

// SiteSetting is one persisted key/value pair of site configuration
type SiteSetting struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Key       string `gorm:"type:varchar(64);uniqueIndex" json:"key"`
	Value     string `gorm:"type:text" json:"value"`
	UpdatedBy string `gorm:"type:varchar(255)" json:"updated_by"`
}
