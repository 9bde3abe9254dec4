package lifecycle

import (
	"github.com/Axeldarren/ITList-sub000/internal/models"

	"gorm.io/gorm"
)

// logActivity пишет запись журнала действий внутри транзакции основной
// операции: ошибка записи откатывает и саму операцию.
func logActivity(tx *gorm.DB, userID uint, activityType string, taskID, projectID *uint, details string) error {
	record := models.Activity{
		UserID:    userID,
		Type:      activityType,
		TaskID:    taskID,
		ProjectID: projectID,
		Details:   details,
	}
	return tx.Create(&record).Error
}
