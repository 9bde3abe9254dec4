package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Axeldarren/ITList-sub000/internal/models"

	"gorm.io/gorm"
)

type CommentInput struct {
	Text              string `json:"text"`
	TaskID            *uint  `json:"taskId"`
	MaintenanceTaskID *uint  `json:"maintenanceTaskId"`
	ParentID          *uint  `json:"parentId"`
}

// CreateComment создаёт комментарий или ответ. Вложенность — один
// уровень: отвечать можно только на корневой комментарий.
func CreateComment(db *gorm.DB, actor Actor, in CommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	if (in.TaskID == nil) == (in.MaintenanceTaskID == nil) {
		return nil, fmt.Errorf("%w: exactly one of taskId and maintenanceTaskId is required", ErrValidation)
	}

	var comment models.Comment
	err := db.Transaction(func(tx *gorm.DB) error {
		if in.TaskID != nil {
			var task models.Task
			if err := tx.First(&task, *in.TaskID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: task %d", ErrNotFound, *in.TaskID)
				}
				return err
			}
			if task.Status == models.TaskArchived {
				return fmt.Errorf("%w: task %d is archived and read-only", ErrValidation, task.ID)
			}
		} else {
			var mt models.MaintenanceTask
			if err := tx.First(&mt, *in.MaintenanceTaskID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: maintenance task %d", ErrNotFound, *in.MaintenanceTaskID)
				}
				return err
			}
		}

		if in.ParentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, *in.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: comment %d", ErrNotFound, *in.ParentID)
				}
				return err
			}
			if parent.ParentID != nil {
				return fmt.Errorf("%w: replies to replies are not allowed", ErrValidation)
			}
		}

		comment = models.Comment{
			Text:              strings.TrimSpace(in.Text),
			UserID:            actor.UserID,
			TaskID:            in.TaskID,
			MaintenanceTaskID: in.MaintenanceTaskID,
			ParentID:          in.ParentID,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		if in.TaskID != nil {
			var projectID *uint
			var task models.Task
			if err := tx.First(&task, *in.TaskID).Error; err == nil {
				projectID = &task.ProjectID
			}
			return logActivity(tx, actor.UserID, models.ActivityComment, in.TaskID, projectID,
				"commented on task")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment мягко удаляет комментарий вместе с ответами на него.
// Удалять может автор или админ.
func DeleteComment(db *gorm.DB, commentID uint, actor Actor) (*models.Comment, error) {
	var comment models.Comment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
			}
			return err
		}
		if comment.UserID != actor.UserID && !actor.IsAdmin {
			return fmt.Errorf("%w: comment %d belongs to another user", ErrForbidden, commentID)
		}

		if err := stampDeleted(tx, &models.Comment{}, actor.UserID, "parent_id = ?", comment.ID); err != nil {
			return err
		}
		return stampDeleted(tx, &models.Comment{}, actor.UserID, "id = ?", comment.ID)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
