package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classpad-app/classpad-backend/internal/repository"
	"github.com/classpad-app/classpad-backend/internal/response"
	"github.com/classpad-app/classpad-backend/internal/service"
)

// failFromError maps the storage/service error taxonomy onto HTTP responses.
// Only ErrTransient signals the client that a retry may help.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrAlreadyExists):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyExists)
	case errors.Is(err, repository.ErrConflict):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, repository.ErrTransient):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrTransient)
	case errors.Is(err, service.ErrBadGroupName):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidGroupName)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
