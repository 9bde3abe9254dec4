package lifecycle

import (
	"errors"
	"fmt"

	"github.com/Axeldarren/ITList-sub000/internal/models"

	"gorm.io/gorm"
)

// Actor — пользователь, выполняющий операцию (из auth-мидлвари).
type Actor struct {
	UserID  uint
	IsAdmin bool
}

// GetProject возвращает проект, если актор имеет к нему доступ.
func GetProject(db *gorm.DB, projectID uint, actor Actor) (*models.Project, error) {
	return checkProjectAccess(db, projectID, actor)
}

// checkProjectAccess проверяет, что проект существует и актор имеет к
// нему доступ: админ либо участник команды, привязанной к проекту.
// Любой отказ — ErrNotFound, чтобы не подтверждать существование проекта.
func checkProjectAccess(db *gorm.DB, projectID uint, actor Actor) (*models.Project, error) {
	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %d", ErrNotFound, projectID)
		}
		return nil, err
	}

	if actor.IsAdmin {
		return &project, nil
	}

	var count int64
	err := db.Model(&models.ProjectTeam{}).
		Joins("JOIN team_members ON team_members.team_id = project_teams.team_id").
		Where("project_teams.project_id = ? AND team_members.user_id = ?", projectID, actor.UserID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: project %d", ErrNotFound, projectID)
	}

	return &project, nil
}
