package server

import (
	"net/http"

	"github.com/Axeldarren/ITList-sub000/internal/config"
	"github.com/Axeldarren/ITList-sub000/internal/handlers"
	"github.com/Axeldarren/ITList-sub000/internal/middleware"
	"github.com/Axeldarren/ITList-sub000/internal/ws"

	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	handlers.JWTSecret = cfg.JWTSecret

	// AUTH
	r.POST("/auth/login", handlers.Login)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth(cfg.JWTSecret))

	// ПОЛЬЗОВАТЕЛИ И КОМАНДЫ (только админ)
	auth.POST("/users", middleware.RequireAdmin(), handlers.CreateUser)
	auth.POST("/teams", middleware.RequireAdmin(), handlers.CreateTeam)
	auth.POST("/teams/:teamId/members", middleware.RequireAdmin(), handlers.AddTeamMember)
	auth.POST("/projects/:projectId/teams", middleware.RequireAdmin(), handlers.AttachTeamToProject)

	// ПРОЕКТЫ
	auth.GET("/projects", handlers.ListProjects)
	auth.POST("/projects", handlers.CreateProject)
	auth.GET("/projects/:projectId", handlers.GetProject)
	auth.DELETE("/projects/:projectId", handlers.DeleteProject)
	auth.PATCH("/projects/:projectId/status", handlers.ChangeProjectStatus)
	auth.POST("/projects/:projectId/archive", handlers.ArchiveProject)
	auth.GET("/projects/:projectId/versions", handlers.ListProjectVersions)
	auth.GET("/projects/:projectId/status-history", handlers.ListProjectStatusHistory)

	// ЗАДАЧИ
	auth.GET("/tasks", handlers.ListTasks)
	auth.POST("/tasks", handlers.CreateTask)
	auth.GET("/tasks/:taskId", handlers.GetTask)
	auth.PATCH("/tasks/:taskId", handlers.UpdateTask)
	auth.PATCH("/tasks/:taskId/status", handlers.UpdateTaskStatus)
	auth.DELETE("/tasks/:taskId", handlers.DeleteTask)

	// ТАЙМЕРЫ
	auth.POST("/timelogs/start", handlers.StartTimer)
	auth.POST("/timelogs/stop", handlers.StopTimer)
	auth.GET("/timelogs/running", handlers.RunningTimer)
	auth.GET("/timelogs", handlers.ListTimeLogs)

	// КОММЕНТАРИИ
	auth.GET("/comments", handlers.ListComments)
	auth.POST("/comments", handlers.CreateComment)
	auth.DELETE("/comments/:commentId", handlers.DeleteComment)

	// ОБСЛУЖИВАНИЕ
	auth.GET("/maintenance-tasks", handlers.ListMaintenanceTasks)
	auth.POST("/maintenance-tasks", handlers.CreateMaintenanceTask)

	// ЖУРНАЛ И УВЕДОМЛЕНИЯ
	auth.GET("/activities", handlers.ListActivities)
	auth.GET("/notifications", handlers.ListNotifications)

	// WEBSOCKET
	auth.GET("/ws", ws.Handle)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
