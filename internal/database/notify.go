package database

import (
	"log"

	"github.com/Axeldarren/ITList-sub000/internal/models"
)

// Notify пишет уведомление best-effort: вызывается после коммита
// основной транзакции, ошибка не откатывает ничего.
func Notify(n models.Notification) {
	if DB == nil {
		return
	}
	if err := DB.Create(&n).Error; err != nil {
		log.Printf("failed to create notification for user %d: %v", n.UserID, err)
	}
}
