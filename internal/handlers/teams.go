package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Axeldarren/ITList-sub000/internal/database"
	"github.com/Axeldarren/ITList-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

type createTeamRequest struct {
	Name string `json:"name"`
}

func CreateTeam(c *gin.Context) {
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "team name is required"})
		return
	}

	team := models.Team{Name: strings.TrimSpace(req.Name)}
	if err := database.DB.Create(&team).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

type addMemberRequest struct {
	UserID uint `json:"userId"`
}

func AddTeamMember(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("teamId"))
	if err != nil || teamID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid team id"})
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required"})
		return
	}

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "team not found"})
		return
	}
	var user models.User
	if err := database.DB.First(&user, req.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	member := models.TeamMember{TeamID: team.ID, UserID: user.ID}
	if err := database.DB.Create(&member).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

type attachTeamRequest struct {
	TeamID uint `json:"teamId"`
}

// AttachTeamToProject открывает проект участникам команды.
func AttachTeamToProject(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Param("projectId"))
	if err != nil || projectID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid project id"})
		return
	}

	var req attachTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TeamID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "teamId is required"})
		return
	}

	var project models.Project
	if err := database.DB.First(&project, projectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
		return
	}
	var team models.Team
	if err := database.DB.First(&team, req.TeamID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "team not found"})
		return
	}

	link := models.ProjectTeam{ProjectID: project.ID, TeamID: team.ID}
	if err := database.DB.Create(&link).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}
