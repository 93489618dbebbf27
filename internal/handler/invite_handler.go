package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classpad-app/classpad-backend/internal/response"
	"github.com/classpad-app/classpad-backend/internal/service"
)

// InviteHandler resolves join codes for clients.
type InviteHandler struct {
	inviteService *service.InviteService
	classService  *service.ClassService
}

// NewInviteHandler creates a new InviteHandler.
func NewInviteHandler(inviteService *service.InviteService, classService *service.ClassService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService, classService: classService}
}

// ResolveInvite godoc
// GET /api/v1/invites/:code
// Resolves a join code to the class it points at, with enough display
// fields for a join confirmation screen.
func (h *InviteHandler) ResolveInvite(c *gin.Context) {
	invite, err := h.inviteService.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		failFromError(c, err)
		return
	}

	class, err := h.classService.GetClass(c.Request.Context(), invite.ClassID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"classId":   class.ID,
		"className": class.NameOrDefault(),
		"classIcon": class.IconOrDefault(),
	})
}
