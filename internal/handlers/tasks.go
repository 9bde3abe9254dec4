package handlers

import (
	"net/http"
	"strconv"

	"github.com/Axeldarren/ITList-sub000/internal/database"
	"github.com/Axeldarren/ITList-sub000/internal/lifecycle"
	"github.com/Axeldarren/ITList-sub000/internal/middleware"
	"github.com/Axeldarren/ITList-sub000/internal/models"
	"github.com/Axeldarren/ITList-sub000/internal/ws"

	"github.com/gin-gonic/gin"
)

func taskIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("taskId"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid task id"})
		return 0, false
	}
	return uint(id), true
}

// ListTasks — задачи проекта; version в query даёт исторический срез,
// по умолчанию отдаётся активная версия.
func ListTasks(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Query("projectId"))
	if err != nil || projectID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "projectId query parameter is required"})
		return
	}

	project, err := lifecycle.GetProject(database.DB, uint(projectID), middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	version := project.Version
	if v := c.Query("version"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid version"})
			return
		}
		version = parsed
	}

	var tasks []models.Task
	if err := database.DB.
		Where("project_id = ? AND version = ?", project.ID, version).
		Order("created_at asc").
		Find(&tasks).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func GetTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	var task models.Task
	if err := database.DB.First(&task, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
		return
	}
	if _, err := lifecycle.GetProject(database.DB, task.ProjectID, middleware.ActorFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func CreateTask(c *gin.Context) {
	var in lifecycle.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	task, err := lifecycle.CreateTask(database.DB, middleware.ActorFrom(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	ws.Broadcast(ws.Event{Type: ws.EventUpdate, ProjectID: task.ProjectID, TaskID: task.ID})
	c.JSON(http.StatusCreated, task)
}

func UpdateTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	var in lifecycle.TaskUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	task, err := lifecycle.UpdateTask(database.DB, id, middleware.ActorFrom(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	ws.Broadcast(ws.Event{Type: ws.EventUpdate, ProjectID: task.ProjectID, TaskID: task.ID})
	c.JSON(http.StatusOK, task)
}

type taskStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

// UpdateTaskStatus — узкий эндпоинт смены статуса (drag-n-drop доски).
func UpdateTaskStatus(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req taskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}

	task, err := lifecycle.UpdateTask(database.DB, id, middleware.ActorFrom(c),
		lifecycle.TaskUpdate{Status: &req.Status})
	if err != nil {
		respondError(c, err)
		return
	}

	ws.Broadcast(ws.Event{Type: ws.EventUpdate, ProjectID: task.ProjectID, TaskID: task.ID})
	c.JSON(http.StatusOK, task)
}

func DeleteTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := lifecycle.DeleteTask(database.DB, id, middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	ws.Broadcast(ws.Event{Type: ws.EventUpdate, ProjectID: task.ProjectID, TaskID: task.ID})
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
