package lifecycle

import (
	"strconv"
	"time"

	"github.com/Axeldarren/ITList-sub000/internal/models"

	"gorm.io/gorm"
)

// ArchiveAndIncrementVersion снимает слепок текущей версии проекта,
// архивирует её задачи и открывает следующую версию в статусе Start.
// EndDate слепка — момент архивации, а не плановый срок проекта.
//
// Выполненность задач здесь сознательно не перепроверяется: легальный
// сценарий Cancel-затем-архив проходит с невыполненными задачами,
// заказчик гейта — ChangeStatus(Finish).
func ArchiveAndIncrementVersion(db *gorm.DB, projectID uint, actor Actor, newStartDate, newEndDate *time.Time) (*models.Project, error) {
	var project *models.Project
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		project, err = checkProjectAccess(tx, projectID, actor)
		if err != nil {
			return err
		}

		now := time.Now()
		snapshot := models.ProjectVersion{
			ProjectID:   project.ID,
			Version:     project.Version,
			Name:        project.Name,
			Description: project.Description,
			Status:      project.Status,
			StartDate:   project.StartDate,
			EndDate:     now,
			ArchivedAt:  now,
		}
		if err := tx.Create(&snapshot).Error; err != nil {
			return err
		}

		// задачи старой версии остаются как есть, меняется только статус
		if err := tx.Model(&models.Task{}).
			Where("project_id = ? AND version = ?", project.ID, project.Version).
			Update("status", models.TaskArchived).Error; err != nil {
			return err
		}

		oldVersion := project.Version
		project.Version = oldVersion + 1
		project.StartDate = newStartDate
		project.EndDate = newEndDate
		if err := applyStatus(tx, project, models.StatusStart, actor.UserID); err != nil {
			return err
		}

		return logActivity(tx, actor.UserID, models.ActivityUpdate, nil, &project.ID,
			"archived project version "+strconv.Itoa(oldVersion))
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// ListVersions возвращает страницу архивных слепков проекта, свежие
// версии первыми.
func ListVersions(db *gorm.DB, projectID uint, actor Actor, page, perPage int) ([]models.ProjectVersion, int64, error) {
	if _, err := checkProjectAccess(db, projectID, actor); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := db.Model(&models.ProjectVersion{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var versions []models.ProjectVersion
	err := db.Where("project_id = ?", projectID).
		Order("version desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&versions).Error
	if err != nil {
		return nil, 0, err
	}
	return versions, total, nil
}
