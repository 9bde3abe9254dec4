package lifecycle

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Axeldarren/ITList-sub000/internal/models"

	"gorm.io/gorm"
)

// StartTimer запускает таймер на задаче или задаче обслуживания.
// Инвариант «не больше одного запущенного таймера на пользователя»
// держится проверкой внутри транзакции; частичный уникальный индекс на
// time_logs страхует от гонки двух одновременных стартов.
func StartTimer(db *gorm.DB, actor Actor, taskID, maintenanceTaskID *uint) (*models.TimeLog, error) {
	if (taskID == nil) == (maintenanceTaskID == nil) {
		return nil, fmt.Errorf("%w: exactly one of taskId and maintenanceTaskId is required", ErrValidation)
	}

	var logEntry models.TimeLog
	err := db.Transaction(func(tx *gorm.DB) error {
		var running int64
		err := tx.Model(&models.TimeLog{}).
			Where("user_id = ? AND end_time IS NULL", actor.UserID).
			Count(&running).Error
		if err != nil {
			return err
		}
		if running > 0 {
			return fmt.Errorf("%w: user already has a running timer on another task", ErrConflict)
		}

		if taskID != nil {
			var task models.Task
			if err := tx.First(&task, *taskID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: task %d", ErrNotFound, *taskID)
				}
				return err
			}
			if task.Status == models.TaskArchived {
				return fmt.Errorf("%w: task %d is archived", ErrValidation, task.ID)
			}

			project, err := checkProjectAccess(tx, task.ProjectID, actor)
			if err != nil {
				return err
			}
			// начало работы само по себе выводит проект из Start
			if project.Status == models.StatusStart {
				if err := applyStatus(tx, project, models.StatusOnProgress, actor.UserID); err != nil {
					return err
				}
			}
		} else {
			var mt models.MaintenanceTask
			if err := tx.First(&mt, *maintenanceTaskID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: maintenance task %d", ErrNotFound, *maintenanceTaskID)
				}
				return err
			}
		}

		logEntry = models.TimeLog{
			UserID:            actor.UserID,
			TaskID:            taskID,
			MaintenanceTaskID: maintenanceTaskID,
			StartTime:         time.Now(),
		}
		if err := tx.Create(&logEntry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// гонку поймал частичный уникальный индекс
				return fmt.Errorf("%w: user already has a running timer on another task", ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &logEntry, nil
}

// StopTimer останавливает таймер: комментарий с длительностью, запись
// длительности в лог и запись журнала действий — одной транзакцией.
// Возвращает задачу (если таймер был на задаче) для уведомлений.
func StopTimer(db *gorm.DB, logID, userID uint, workDescription string) (*models.TimeLog, *models.Task, error) {
	workDescription = strings.TrimSpace(workDescription)
	if workDescription == "" {
		return nil, nil, fmt.Errorf("%w: work description is required to stop a timer", ErrValidation)
	}

	var (
		logEntry models.TimeLog
		task     *models.Task
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&logEntry, logID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: time log %d", ErrNotFound, logID)
			}
			return err
		}
		if logEntry.UserID != userID {
			return fmt.Errorf("%w: time log %d belongs to another user", ErrForbidden, logID)
		}
		if !logEntry.Running() {
			return fmt.Errorf("%w: time log %d is already stopped", ErrValidation, logID)
		}

		now := time.Now()
		duration := int64(math.Round(now.Sub(logEntry.StartTime).Seconds()))

		comment := models.Comment{
			Text:              fmt.Sprintf("[%s] %s", FormatDuration(duration), workDescription),
			UserID:            userID,
			TaskID:            logEntry.TaskID,
			MaintenanceTaskID: logEntry.MaintenanceTaskID,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		logEntry.EndTime = &now
		logEntry.DurationSeconds = duration
		logEntry.CommentID = &comment.ID
		if err := tx.Save(&logEntry).Error; err != nil {
			return err
		}

		if logEntry.TaskID != nil {
			var t models.Task
			if err := tx.First(&t, *logEntry.TaskID).Error; err != nil {
				return err
			}
			task = &t
			if err := logActivity(tx, userID, models.ActivityComment, &t.ID, &t.ProjectID,
				"commented on task "+t.Title); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &logEntry, task, nil
}

// FormatDuration — человекочитаемая длительность: "1h 23m", "45m".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
