package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model
	Text   string `gorm:"type:text;not null" json:"text"`
	UserID uint   `gorm:"not null" json:"userId"`

	TaskID            *uint `json:"taskId"`
	MaintenanceTaskID *uint `json:"maintenanceTaskId"`

	// один уровень вложенности: ответ на корневой комментарий
	ParentID *uint `json:"parentId"`

	DeletedByID *uint `json:"deletedById,omitempty"`
}

type Attachment struct {
	gorm.Model
	TaskID       uint   `gorm:"not null;index" json:"taskId"`
	FileURL      string `gorm:"size:512;not null" json:"fileURL"`
	FileName     string `gorm:"size:255" json:"fileName"`
	UploadedByID uint   `gorm:"not null" json:"uploadedById"`

	DeletedByID *uint `json:"deletedById,omitempty"`
}
