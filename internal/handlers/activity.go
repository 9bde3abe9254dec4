package handlers

import (
	"net/http"

	"github.com/Axeldarren/ITList-sub000/internal/database"
	"github.com/Axeldarren/ITList-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

// ListActivities — лента последних действий.
func ListActivities(c *gin.Context) {
	var activities []models.Activity
	err := database.DB.
		Preload("User").
		Order("created_at desc").
		Limit(200).
		Find(&activities).Error
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// ListNotifications — уведомления текущего пользователя.
func ListNotifications(c *gin.Context) {
	var notifications []models.Notification
	err := database.DB.
		Where("user_id = ?", c.GetUint("userID")).
		Order("created_at desc").
		Limit(100).
		Find(&notifications).Error
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}
