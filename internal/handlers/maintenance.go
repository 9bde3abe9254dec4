package handlers

import (
	"net/http"
	"strings"

	"github.com/Axeldarren/ITList-sub000/internal/database"
	"github.com/Axeldarren/ITList-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

type createMaintenanceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func CreateMaintenanceTask(c *gin.Context) {
	var req createMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "maintenance task name is required"})
		return
	}

	mt := models.MaintenanceTask{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Status:      "Open",
	}
	if err := database.DB.Create(&mt).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mt)
}

func ListMaintenanceTasks(c *gin.Context) {
	var tasks []models.MaintenanceTask
	if err := database.DB.Order("created_at desc").Find(&tasks).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}
