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

func CreateComment(c *gin.Context) {
	var in lifecycle.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	comment, err := lifecycle.CreateComment(database.DB, middleware.ActorFrom(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	if comment.TaskID != nil {
		ws.Broadcast(ws.Event{Type: ws.EventUpdate, TaskID: *comment.TaskID})
	}
	c.JSON(http.StatusCreated, comment)
}

func DeleteComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("commentId"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid comment id"})
		return
	}

	comment, err := lifecycle.DeleteComment(database.DB, uint(id), middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if comment.TaskID != nil {
		ws.Broadcast(ws.Event{Type: ws.EventUpdate, TaskID: *comment.TaskID})
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// ListComments — комментарии задачи, корневые с ответами.
func ListComments(c *gin.Context) {
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

	var comments []models.Comment
	if err := database.DB.
		Where("task_id = ?", task.ID).
		Order("created_at asc").
		Find(&comments).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
