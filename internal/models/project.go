package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	StatusStart      ProjectStatus = "Start"
	StatusOnProgress ProjectStatus = "OnProgress"
	StatusResolve    ProjectStatus = "Resolve"
	StatusFinish     ProjectStatus = "Finish"
	StatusCancel     ProjectStatus = "Cancel"
)

type Project struct {
	gorm.Model
	Name        string        `gorm:"size:255;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Version     int           `gorm:"not null;default:1" json:"version"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'Start'" json:"status"`

	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`

	DeletedByID *uint `json:"deletedById,omitempty"`
}

// ProjectVersion — снимок проекта на момент архивации.
// Строки создаются один раз и никогда не изменяются.
type ProjectVersion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ProjectID uint `gorm:"not null;uniqueIndex:uniq_project_version" json:"projectId"`
	Version   int  `gorm:"not null;uniqueIndex:uniq_project_version" json:"version"`

	Name        string        `gorm:"size:255;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null" json:"status"`

	StartDate *time.Time `json:"startDate"`
	// фактический конец версии — момент архивации, не плановый EndDate
	EndDate    time.Time `gorm:"not null" json:"endDate"`
	ArchivedAt time.Time `gorm:"not null" json:"archivedAt"`
}

// ProjectStatusHistory — журнал переходов статуса, только append.
type ProjectStatusHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ProjectID   uint          `gorm:"not null;index" json:"projectId"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null" json:"status"`
	ChangedByID uint          `json:"changedById"`
}
