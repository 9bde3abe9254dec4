package models

import "gorm.io/gorm"

// MaintenanceTask — задача регламентного обслуживания продукта.
// Живёт вне проектных версий, таймеры и комментарии цепляются по FK.
type MaintenanceTask struct {
	gorm.Model
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:50;not null;default:'Open'" json:"status"`

	DeletedByID *uint `json:"deletedById,omitempty"`
}
