package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/Axeldarren/ITList-sub000/internal/models"

	"gorm.io/gorm"
)

type ProjectInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	TeamID      *uint      `json:"teamId"`
}

// CreateProject создаёт проект версии 1 в статусе Start и, если задана
// команда, сразу привязывает её.
func CreateProject(db *gorm.DB, actor Actor, in ProjectInput) (*models.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}

	var project models.Project
	err := db.Transaction(func(tx *gorm.DB) error {
		project = models.Project{
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			Version:     1,
			Status:      models.StatusStart,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
		}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		if in.TeamID != nil {
			link := models.ProjectTeam{ProjectID: project.ID, TeamID: *in.TeamID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		return logActivity(tx, actor.UserID, models.ActivityCreate, nil, &project.ID,
			"created project "+project.Name)
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject мягко удаляет проект и каскадом все его задачи с их
// комментариями и вложениями. Порядок обхода фиксированный: комментарии,
// вложения, задачи, проект.
func DeleteProject(db *gorm.DB, projectID uint, actor Actor) error {
	return db.Transaction(func(tx *gorm.DB) error {
		project, err := checkProjectAccess(tx, projectID, actor)
		if err != nil {
			return err
		}

		var taskIDs []uint
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", project.ID).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := stampDeleted(tx, &models.Comment{}, actor.UserID, "task_id IN ?", taskIDs); err != nil {
				return err
			}
			if err := stampDeleted(tx, &models.Attachment{}, actor.UserID, "task_id IN ?", taskIDs); err != nil {
				return err
			}
			if err := stampDeleted(tx, &models.Task{}, actor.UserID, "id IN ?", taskIDs); err != nil {
				return err
			}
		}

		if err := stampDeleted(tx, &models.Project{}, actor.UserID, "id = ?", project.ID); err != nil {
			return err
		}

		return logActivity(tx, actor.UserID, models.ActivityDelete, nil, &project.ID,
			"deleted project "+project.Name)
	})
}
