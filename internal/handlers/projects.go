package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Axeldarren/ITList-sub000/internal/database"
	"github.com/Axeldarren/ITList-sub000/internal/lifecycle"
	"github.com/Axeldarren/ITList-sub000/internal/middleware"
	"github.com/Axeldarren/ITList-sub000/internal/models"
	"github.com/Axeldarren/ITList-sub000/internal/ws"

	"github.com/gin-gonic/gin"
)

func projectIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("projectId"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid project id"})
		return 0, false
	}
	return uint(id), true
}

// ListProjects — админ видит все проекты, остальные только свои (через
// команды).
func ListProjects(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	dbq := database.DB.Order("created_at desc")
	if !actor.IsAdmin {
		dbq = dbq.Where(
			"projects.id IN (SELECT pt.project_id FROM project_teams pt JOIN team_members tm ON tm.team_id = pt.team_id WHERE tm.user_id = ?)",
			actor.UserID)
	}

	var projects []models.Project
	if err := dbq.Find(&projects).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func GetProject(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	project, err := lifecycle.GetProject(database.DB, id, middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func CreateProject(c *gin.Context) {
	var in lifecycle.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	project, err := lifecycle.CreateProject(database.DB, middleware.ActorFrom(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	ws.Broadcast(ws.Event{Type: ws.EventProjectUpdate, ProjectID: project.ID})
	c.JSON(http.StatusCreated, project)
}

func DeleteProject(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	if err := lifecycle.DeleteProject(database.DB, id, middleware.ActorFrom(c)); err != nil {
		respondError(c, err)
		return
	}

	ws.Broadcast(ws.Event{Type: ws.EventProjectUpdate, ProjectID: id})
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

type changeStatusRequest struct {
	Status models.ProjectStatus `json:"status"`
}

func ChangeProjectStatus(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	project, err := lifecycle.ChangeStatus(database.DB, id, req.Status, middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	ws.Broadcast(ws.Event{Type: ws.EventProjectUpdate, ProjectID: project.ID})
	c.JSON(http.StatusOK, gin.H{
		"message": "project status updated to " + string(project.Status),
		"project": project,
	})
}

type archiveRequest struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

func ArchiveProject(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}

	var req archiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	project, err := lifecycle.ArchiveAndIncrementVersion(database.DB, id, middleware.ActorFrom(c), req.StartDate, req.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}

	ws.Broadcast(ws.Event{Type: ws.EventProjectUpdate, ProjectID: project.ID})
	c.JSON(http.StatusOK, gin.H{
		"message": "project archived, now at version " + strconv.Itoa(project.Version),
		"project": project,
	})
}

func ListProjectVersions(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "20"))

	versions, total, err := lifecycle.ListVersions(database.DB, id, middleware.ActorFrom(c), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": versions,
		"meta": gin.H{
			"page":    page,
			"perPage": perPage,
			"total":   total,
		},
	})
}

func ListProjectStatusHistory(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	if _, err := lifecycle.GetProject(database.DB, id, middleware.ActorFrom(c)); err != nil {
		respondError(c, err)
		return
	}

	var history []models.ProjectStatusHistory
	err := database.DB.Where("project_id = ?", id).
		Order("created_at asc").
		Find(&history).Error
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
