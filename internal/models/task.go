package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskToDo        TaskStatus = "To Do"
	TaskInProgress  TaskStatus = "Work In Progress"
	TaskUnderReview TaskStatus = "Under Review"
	TaskCompleted   TaskStatus = "Completed"
	// Archived выставляется только архивацией проекта, руками не назначается
	TaskArchived TaskStatus = "Archived"
)

type Task struct {
	gorm.Model
	ProjectID uint `gorm:"not null;index" json:"projectId"`
	// версия проекта на момент создания, дальше не меняется
	Version int `gorm:"not null" json:"version"`

	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'To Do'" json:"status"`
	Priority    string     `gorm:"size:50" json:"priority"`
	Tags        string     `gorm:"size:255" json:"tags"`

	StartDate *time.Time `json:"startDate"`
	DueDate   *time.Time `json:"dueDate"`
	Points    int        `json:"points"`

	AuthorUserID   uint  `gorm:"not null" json:"authorUserId"`
	AssignedUserID *uint `json:"assignedUserId"`
	UpdatedByID    *uint `json:"updatedById"`
	DeletedByID    *uint `json:"deletedById,omitempty"`
}
