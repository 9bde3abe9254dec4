package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Axeldarren/ITList-sub000/internal/lifecycle"

	"github.com/gin-gonic/gin"
)

// respondError — единая точка отображения ошибок ядра в HTTP-статусы.
// Всё, что не классифицировано, считается внутренней ошибкой: текст
// попадает в ответ для диагностики оператором, не для показа
// пользователю как есть.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, lifecycle.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, lifecycle.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, lifecycle.ErrValidation), errors.Is(err, lifecycle.ErrTransition):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error: " + err.Error()})
	}
}
