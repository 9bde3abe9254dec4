package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Axeldarren/ITList-sub000/internal/database"
	"github.com/Axeldarren/ITList-sub000/internal/lifecycle"
	"github.com/Axeldarren/ITList-sub000/internal/middleware"
	"github.com/Axeldarren/ITList-sub000/internal/models"
	"github.com/Axeldarren/ITList-sub000/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type startTimerRequest struct {
	TaskID            *uint `json:"taskId"`
	MaintenanceTaskID *uint `json:"maintenanceTaskId"`
}

func StartTimer(c *gin.Context) {
	var req startTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	actor := middleware.ActorFrom(c)
	logEntry, err := lifecycle.StartTimer(database.DB, actor, req.TaskID, req.MaintenanceTaskID)
	if err != nil {
		respondError(c, err)
		return
	}

	msg := &ws.TimerMessage{Type: ws.TimerStarted, UserID: actor.UserID, LogID: logEntry.ID}
	event := ws.Event{Type: ws.EventTimeLogUpdate, Message: msg}
	if logEntry.TaskID != nil {
		msg.TaskID = *logEntry.TaskID
		event.TaskID = *logEntry.TaskID
	}
	if logEntry.MaintenanceTaskID != nil {
		msg.MaintenanceTaskID = *logEntry.MaintenanceTaskID
	}
	ws.Broadcast(event)

	c.JSON(http.StatusCreated, logEntry)
}

type stopTimerRequest struct {
	LogID       uint   `json:"logId"`
	CommentText string `json:"commentText"`
}

func StopTimer(c *gin.Context) {
	var req stopTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.LogID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "logId is required"})
		return
	}

	actor := middleware.ActorFrom(c)
	logEntry, task, err := lifecycle.StopTimer(database.DB, req.LogID, actor.UserID, req.CommentText)
	if err != nil {
		respondError(c, err)
		return
	}

	// уведомление исполнителю — после коммита, best-effort
	if task != nil && task.AssignedUserID != nil && *task.AssignedUserID != actor.UserID {
		database.Notify(models.Notification{
			UserID:    *task.AssignedUserID,
			Type:      "comment",
			Title:     "New comment on " + task.Title,
			Message:   "Work was logged on task " + task.Title,
			TaskID:    &task.ID,
			ProjectID: &task.ProjectID,
			CommentID: logEntry.CommentID,
		})
	}

	msg := &ws.TimerMessage{Type: ws.TimerStopped, UserID: actor.UserID, LogID: logEntry.ID}
	event := ws.Event{Type: ws.EventTimeLogUpdate, Message: msg}
	if logEntry.TaskID != nil {
		msg.TaskID = *logEntry.TaskID
		event.TaskID = *logEntry.TaskID
	}
	if logEntry.MaintenanceTaskID != nil {
		msg.MaintenanceTaskID = *logEntry.MaintenanceTaskID
	}
	ws.Broadcast(event)

	c.JSON(http.StatusOK, logEntry)
}

// RunningTimer — текущий запущенный таймер актора, если есть.
func RunningTimer(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var logEntry models.TimeLog
	err := database.DB.
		Where("user_id = ? AND end_time IS NULL", actor.UserID).
		First(&logEntry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"running": nil})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"running": logEntry})
}

// ListTimeLogs — история логов по задаче.
func ListTimeLogs(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Query("taskId"))
	if err != nil || taskID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "taskId query parameter is required"})
		return
	}

	var task models.Task
	if err := database.DB.First(&task, taskID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
		return
	}
	if _, err := lifecycle.GetProject(database.DB, task.ProjectID, middleware.ActorFrom(c)); err != nil {
		respondError(c, err)
		return
	}

	var logs []models.TimeLog
	if err := database.DB.
		Where("task_id = ?", task.ID).
		Order("start_time desc").
		Find(&logs).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
