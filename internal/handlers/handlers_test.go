package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Axeldarren/ITList-sub000/internal/auth"
	"github.com/Axeldarren/ITList-sub000/internal/config"
	"github.com/Axeldarren/ITList-sub000/internal/database"
	"github.com/Axeldarren/ITList-sub000/internal/models"
	"github.com/Axeldarren/ITList-sub000/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=10000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	return server.NewRouter(&config.Config{JWTSecret: testSecret, ServerPort: "0"})
}

func adminToken(t *testing.T) string {
	t.Helper()
	user := models.User{Username: "admin", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, database.DB.Create(&user).Error)
	token, err := auth.GenerateToken(testSecret, user.ID, true)
	require.NoError(t, err)
	return token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/projects", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProjectStatusEndpoint(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)

	w := doJSON(r, http.MethodPost, "/projects", token, gin.H{"name": "API project"})
	require.Equal(t, http.StatusCreated, w.Code)
	var project models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))

	// нелегальный переход — 400 с описанием пары
	w = doJSON(r, http.MethodPatch, "/projects/1/status", token, gin.H{"status": "Finish"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Start")
	assert.Contains(t, w.Body.String(), "Finish")

	// легальный — 200 с подтверждением
	w = doJSON(r, http.MethodPatch, "/projects/1/status", token, gin.H{"status": "OnProgress"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "OnProgress")

	// недоступный проект неотличим от несуществующего
	member := models.User{Username: "member", PasswordHash: "x"}
	require.NoError(t, database.DB.Create(&member).Error)
	memberToken, err := auth.GenerateToken(testSecret, member.ID, false)
	require.NoError(t, err)

	w = doJSON(r, http.MethodPatch, "/projects/1/status", memberToken, gin.H{"status": "Resolve"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTimerEndpoints(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)

	w := doJSON(r, http.MethodPost, "/projects", token, gin.H{"name": "Timed"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/tasks", token, gin.H{"projectId": 1, "title": "T1"})
	require.Equal(t, http.StatusCreated, w.Code)

	// до старта запущенного таймера нет
	w = doJSON(r, http.MethodGet, "/timelogs/running", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"running": null}`, w.Body.String())

	w = doJSON(r, http.MethodPost, "/timelogs/start", token, gin.H{"taskId": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	var started models.TimeLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))

	// после старта ручка отдаёт именно этот лог
	w = doJSON(r, http.MethodGet, "/timelogs/running", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var runningResp struct {
		Running *models.TimeLog `json:"running"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runningResp))
	require.NotNil(t, runningResp.Running)
	assert.Equal(t, started.ID, runningResp.Running.ID)

	// второй таймер — конфликт
	w = doJSON(r, http.MethodPost, "/timelogs/start", token, gin.H{"taskId": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	// стоп без описания — ошибка валидации
	w = doJSON(r, http.MethodPost, "/timelogs/stop", token, gin.H{"logId": started.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/timelogs/stop", token,
		gin.H{"logId": started.ID, "commentText": "wired the endpoint"})
	assert.Equal(t, http.StatusOK, w.Code)

	// повторный стоп того же лога
	w = doJSON(r, http.MethodPost, "/timelogs/stop", token,
		gin.H{"logId": started.ID, "commentText": "again"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVersionsEndpointShape(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)

	w := doJSON(r, http.MethodPost, "/projects", token, gin.H{"name": "Versioned"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/projects/1/archive", token, gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/projects/1/versions?page=1&perPage=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.ProjectVersion `json:"data"`
		Meta struct {
			Page  int   `json:"page"`
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 1, resp.Data[0].Version)
	assert.EqualValues(t, 1, resp.Meta.Total)
}
