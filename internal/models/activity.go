package models

import "time"

const (
	ActivityCreate       = "create"
	ActivityUpdate       = "update"
	ActivityStatusChange = "status_change"
	ActivityDelete       = "delete"
	ActivityComment      = "comment"
)

// Activity — журнал действий, только append.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID uint `gorm:"not null" json:"userId"`
	User   User `json:"user,omitempty"`

	Type      string `gorm:"size:50;not null" json:"type"`
	TaskID    *uint  `json:"taskId"`
	ProjectID *uint  `json:"projectId"`
	Details   string `gorm:"type:text" json:"details"`
}

// Notification — уведомление пользователю, создаётся best-effort
// после коммита основной транзакции.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID  uint   `gorm:"not null;index" json:"userId"`
	Type    string `gorm:"size:50;not null" json:"type"`
	Title   string `gorm:"size:255" json:"title"`
	Message string `gorm:"type:text" json:"message"`

	TaskID    *uint `json:"taskId"`
	ProjectID *uint `json:"projectId"`
	CommentID *uint `json:"commentId"`

	Read bool `gorm:"not null;default:false" json:"read"`
}
