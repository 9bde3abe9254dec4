package models

import (
	"time"

	"gorm.io/gorm"
)

// TimeLog — запись учёта времени. Ровно одно из TaskID /
// MaintenanceTaskID заполнено. Частичный уникальный индекс гарантирует
// не больше одного запущенного таймера на пользователя.
type TimeLog struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex:uniq_running_timer,where:end_time IS NULL" json:"userId"`

	TaskID            *uint `json:"taskId"`
	MaintenanceTaskID *uint `json:"maintenanceTaskId"`

	StartTime       time.Time  `gorm:"not null" json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	DurationSeconds int64      `json:"durationSeconds"`

	CommentID *uint `json:"commentId"`
}

// Running — таймер ещё идёт.
func (t *TimeLog) Running() bool {
	return t.EndTime == nil
}
