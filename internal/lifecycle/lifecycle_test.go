package lifecycle

import (
	"path/filepath"
	"testing"

	"github.com/Axeldarren/ITList-sub000/internal/database"
	"github.com/Axeldarren/ITList-sub000/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB — изолированная sqlite-база на файле во временной
// директории теста. _txlock=immediate сериализует конкурирующие
// транзакции так же, как это делает продакшен-постгрес.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=10000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	// админ занимает первую строку users: все сеяные пользователи
	// получают отличные от него ID
	adminUser := models.User{Username: "admin@itlist.local", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, db.Create(&adminUser).Error)
	require.EqualValues(t, admin.UserID, adminUser.ID)

	return db
}

var admin = Actor{UserID: 1, IsAdmin: true}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedProject(t *testing.T, db *gorm.DB, status models.ProjectStatus) *models.Project {
	t.Helper()
	project := models.Project{
		Name:    "Billing rework",
		Version: 1,
		Status:  status,
	}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

func seedTask(t *testing.T, db *gorm.DB, projectID uint, version int, status models.TaskStatus) *models.Task {
	t.Helper()
	task := models.Task{
		ProjectID:    projectID,
		Version:      version,
		Title:        "task",
		Status:       status,
		AuthorUserID: admin.UserID,
	}
	require.NoError(t, db.Create(&task).Error)
	return &task
}

// участник команды, привязанной к проекту
func seedMember(t *testing.T, db *gorm.DB, projectID uint, username string) Actor {
	t.Helper()
	user := seedUser(t, db, username)
	team := models.Team{Name: "team-" + username}
	require.NoError(t, db.Create(&team).Error)
	require.NoError(t, db.Create(&models.TeamMember{TeamID: team.ID, UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.ProjectTeam{ProjectID: projectID, TeamID: team.ID}).Error)
	return Actor{UserID: user.ID}
}

func historyCount(t *testing.T, db *gorm.DB, projectID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.ProjectStatusHistory{}).
		Where("project_id = ?", projectID).Count(&count).Error)
	return count
}

func reload(t *testing.T, db *gorm.DB, projectID uint) *models.Project {
	t.Helper()
	var project models.Project
	require.NoError(t, db.First(&project, projectID).Error)
	return &project
}
