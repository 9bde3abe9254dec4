package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Axeldarren/ITList-sub000/internal/models"

	"gorm.io/gorm"
)

type TaskInput struct {
	ProjectID      uint               `json:"projectId"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Status         *models.TaskStatus `json:"status"`
	Priority       string             `json:"priority"`
	Tags           string             `json:"tags"`
	StartDate      *time.Time         `json:"startDate"`
	DueDate        *time.Time         `json:"dueDate"`
	Points         int                `json:"points"`
	AssignedUserID *uint              `json:"assignedUserId"`
}

// TaskUpdate — частичное обновление: nil-поля не трогаются.
type TaskUpdate struct {
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	Status         *models.TaskStatus `json:"status"`
	Priority       *string            `json:"priority"`
	Tags           *string            `json:"tags"`
	StartDate      *time.Time         `json:"startDate"`
	DueDate        *time.Time         `json:"dueDate"`
	Points         *int               `json:"points"`
	AssignedUserID *uint              `json:"assignedUserId"`
}

// Archived пользователю назначать нельзя — его выставляет только архивация.
func assignableTaskStatus(s models.TaskStatus) bool {
	switch s {
	case models.TaskToDo, models.TaskInProgress, models.TaskUnderReview, models.TaskCompleted:
		return true
	}
	return false
}

// CreateTask создаёт задачу в активной версии проекта. Номер версии
// фиксируется на момент создания и дальше не меняется.
func CreateTask(db *gorm.DB, actor Actor, in TaskInput) (*models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrValidation)
	}

	status := models.TaskToDo
	if in.Status != nil {
		if !assignableTaskStatus(*in.Status) {
			return nil, fmt.Errorf("%w: task status %q cannot be assigned", ErrValidation, *in.Status)
		}
		status = *in.Status
	}

	var task models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		project, err := checkProjectAccess(tx, in.ProjectID, actor)
		if err != nil {
			return err
		}

		task = models.Task{
			ProjectID:      project.ID,
			Version:        project.Version,
			Title:          strings.TrimSpace(in.Title),
			Description:    in.Description,
			Status:         status,
			Priority:       in.Priority,
			Tags:           in.Tags,
			StartDate:      in.StartDate,
			DueDate:        in.DueDate,
			Points:         in.Points,
			AuthorUserID:   actor.UserID,
			AssignedUserID: in.AssignedUserID,
		}
		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		if err := logActivity(tx, actor.UserID, models.ActivityCreate, &task.ID, &task.ProjectID,
			"created task "+task.Title); err != nil {
			return err
		}

		// новая невыполненная задача может откатить Resolve
		return recomputeStatus(tx, task.ProjectID, actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask применяет частичное обновление. Смена статуса и правка
// полей журналируются разными типами записей, но никогда обоими сразу.
func UpdateTask(db *gorm.DB, taskID uint, actor Actor, in TaskUpdate) (*models.Task, error) {
	var task models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: task %d", ErrNotFound, taskID)
			}
			return err
		}
		if _, err := checkProjectAccess(tx, task.ProjectID, actor); err != nil {
			return err
		}
		if task.Status == models.TaskArchived {
			return fmt.Errorf("%w: task %d is archived and read-only", ErrValidation, taskID)
		}

		statusChanged := false
		if in.Status != nil && *in.Status != task.Status {
			if !assignableTaskStatus(*in.Status) {
				return fmt.Errorf("%w: task status %q cannot be assigned", ErrValidation, *in.Status)
			}
			task.Status = *in.Status
			statusChanged = true
		}
		if in.Title != nil {
			if strings.TrimSpace(*in.Title) == "" {
				return fmt.Errorf("%w: task title is required", ErrValidation)
			}
			task.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			task.Description = *in.Description
		}
		if in.Priority != nil {
			task.Priority = *in.Priority
		}
		if in.Tags != nil {
			task.Tags = *in.Tags
		}
		if in.StartDate != nil {
			task.StartDate = in.StartDate
		}
		if in.DueDate != nil {
			task.DueDate = in.DueDate
		}
		if in.Points != nil {
			task.Points = *in.Points
		}
		if in.AssignedUserID != nil {
			task.AssignedUserID = in.AssignedUserID
		}
		task.UpdatedByID = &actor.UserID

		if err := tx.Save(&task).Error; err != nil {
			return err
		}

		activityType := models.ActivityUpdate
		details := "updated task " + task.Title
		if statusChanged {
			activityType = models.ActivityStatusChange
			details = fmt.Sprintf("changed status of task %s to %s", task.Title, task.Status)
		}
		if err := logActivity(tx, actor.UserID, activityType, &task.ID, &task.ProjectID, details); err != nil {
			return err
		}

		return recomputeStatus(tx, task.ProjectID, actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask мягко удаляет задачу с каскадом на комментарии и вложения.
// Возвращает удалённую задачу для адресной рассылки события.
func DeleteTask(db *gorm.DB, taskID uint, actor Actor) (*models.Task, error) {
	var task models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: task %d", ErrNotFound, taskID)
			}
			return err
		}
		if _, err := checkProjectAccess(tx, task.ProjectID, actor); err != nil {
			return err
		}

		if err := softDeleteTaskCascade(tx, task.ID, actor.UserID); err != nil {
			return err
		}

		if err := logActivity(tx, actor.UserID, models.ActivityDelete, &task.ID, &task.ProjectID,
			"deleted task "+task.Title); err != nil {
			return err
		}

		return recomputeStatus(tx, task.ProjectID, actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// softDeleteTaskCascade обходит зависимые сущности в фиксированном
// порядке (комментарии, вложения, сама задача) и ставит единообразные
// отметки deleted_at / deleted_by_id. Строки остаются для аудита.
func softDeleteTaskCascade(tx *gorm.DB, taskID, actorID uint) error {
	if err := stampDeleted(tx, &models.Comment{}, actorID, "task_id = ?", taskID); err != nil {
		return err
	}
	if err := stampDeleted(tx, &models.Attachment{}, actorID, "task_id = ?", taskID); err != nil {
		return err
	}
	return stampDeleted(tx, &models.Task{}, actorID, "id = ?", taskID)
}

func stampDeleted(tx *gorm.DB, model interface{}, actorID uint, query string, args ...interface{}) error {
	return tx.Model(model).Where(query, args...).Updates(map[string]interface{}{
		"deleted_at":    time.Now(),
		"deleted_by_id": actorID,
	}).Error
}
