package lifecycle

import (
	"fmt"

	"github.com/Axeldarren/ITList-sub000/internal/models"

	"gorm.io/gorm"
)

// Таблица ручных переходов. Finish и Cancel терминальные: выхода нет,
// «переоткрытие» возможно только архивацией в новую версию.
var manualEdges = map[models.ProjectStatus][]models.ProjectStatus{
	models.StatusStart:      {models.StatusOnProgress, models.StatusCancel},
	models.StatusOnProgress: {models.StatusResolve, models.StatusCancel},
	models.StatusResolve:    {models.StatusOnProgress, models.StatusFinish, models.StatusCancel},
	models.StatusFinish:     {},
	models.StatusCancel:     {},
}

// Системные рёбра автопереходов: проверяются отдельно от ручной
// таблицы, чтобы фоновые коррекции не зависели от прав пользователя.
var autoEdges = map[models.ProjectStatus][]models.ProjectStatus{
	models.StatusOnProgress: {models.StatusResolve},
	models.StatusResolve:    {models.StatusOnProgress},
}

func statusKnown(s models.ProjectStatus) bool {
	_, ok := manualEdges[s]
	return ok
}

// CanTransition — разрешён ли ручной переход from -> to.
func CanTransition(from, to models.ProjectStatus) bool {
	return hasEdge(manualEdges, from, to)
}

// CanAutoTransition — разрешён ли системный переход from -> to.
func CanAutoTransition(from, to models.ProjectStatus) bool {
	return hasEdge(autoEdges, from, to)
}

func hasEdge(edges map[models.ProjectStatus][]models.ProjectStatus, from, to models.ProjectStatus) bool {
	for _, next := range edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// applyStatus — единственный путь смены статуса: обновление проекта и
// строка истории в одной транзакции. Используется и ручными, и
// автоматическими переходами.
func applyStatus(tx *gorm.DB, project *models.Project, to models.ProjectStatus, changedByID uint) error {
	project.Status = to
	if err := tx.Save(project).Error; err != nil {
		return err
	}
	history := models.ProjectStatusHistory{
		ProjectID:   project.ID,
		Status:      to,
		ChangedByID: changedByID,
	}
	return tx.Create(&history).Error
}

// ChangeStatus выполняет ручной переход статуса проекта.
func ChangeStatus(db *gorm.DB, projectID uint, to models.ProjectStatus, actor Actor) (*models.Project, error) {
	if !statusKnown(to) {
		return nil, fmt.Errorf("%w: unknown project status %q", ErrValidation, to)
	}

	var project *models.Project
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		project, err = checkProjectAccess(tx, projectID, actor)
		if err != nil {
			return err
		}

		if !CanTransition(project.Status, to) {
			return fmt.Errorf("%w: %s -> %s is not in the allowed transition table",
				ErrTransition, project.Status, to)
		}

		if to == models.StatusFinish {
			incomplete, err := incompleteTaskCount(tx, project.ID, project.Version)
			if err != nil {
				return err
			}
			if incomplete > 0 {
				return fmt.Errorf("%w: cannot finish project, %d task(s) in version %d are not completed",
					ErrTransition, incomplete, project.Version)
			}
		}

		return applyStatus(tx, project, to, actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// recomputeStatus выполняет автопереходы по состоянию задач активной
// версии: OnProgress -> Resolve, когда все задачи выполнены,
// Resolve -> OnProgress — фоновая коррекция, когда выполнены не все.
// Вызывается внутри транзакции операции, которая изменила задачи.
func recomputeStatus(tx *gorm.DB, projectID uint, changedByID uint) error {
	var project models.Project
	if err := tx.First(&project, projectID).Error; err != nil {
		return err
	}

	incomplete, err := incompleteTaskCount(tx, project.ID, project.Version)
	if err != nil {
		return err
	}

	switch {
	case project.Status == models.StatusOnProgress && incomplete == 0:
		var total int64
		err := tx.Model(&models.Task{}).
			Where("project_id = ? AND version = ?", project.ID, project.Version).
			Count(&total).Error
		if err != nil {
			return err
		}
		if total == 0 {
			// пустой проект не считается выполненным
			return nil
		}
		return applyStatus(tx, &project, models.StatusResolve, changedByID)

	case project.Status == models.StatusResolve && incomplete > 0:
		return applyStatus(tx, &project, models.StatusOnProgress, changedByID)
	}

	return nil
}

// incompleteTaskCount — невыполненные задачи активной версии; мягко
// удалённые и архивные не считаются.
func incompleteTaskCount(tx *gorm.DB, projectID uint, version int) (int64, error) {
	var count int64
	err := tx.Model(&models.Task{}).
		Where("project_id = ? AND version = ? AND status NOT IN ?",
			projectID, version,
			[]models.TaskStatus{models.TaskCompleted, models.TaskArchived}).
		Count(&count).Error
	return count, err
}
