package handlers

import (
	"errors"
	"net/http"

	"tasktrack/internal/domain"
	"tasktrack/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Tasks *service.TaskService
	Users *service.UserService
}

func NewHandler(tasks *service.TaskService, users *service.UserService) *Handler {
	return &Handler{Tasks: tasks, Users: users}
}

// writeError maps the domain error taxonomy onto status codes.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
