package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classpad-app/classpad-backend/internal/response"
	"github.com/classpad-app/classpad-backend/internal/service"
	"github.com/classpad-app/classpad-backend/internal/validator"
)

// GroupHandler handles group membership within a class.
type GroupHandler struct {
	groupService *service.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// AddMemberRequest is the payload for adding a user to a group.
type AddMemberRequest struct {
	UserID string `json:"userId" binding:"required,min=1,max=128"`
}

// AddMember godoc
// POST /api/v1/classes/:class_id/groups/:group_name/members
// Adds a user to the named group, creating the group on first use.
func (h *GroupHandler) AddMember(c *gin.Context) {
	groupName := c.Param("group_name")
	if !validator.IsValidGroupName(groupName) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidGroupName)
		return
	}

	var req AddMemberRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	added, err := h.groupService.AddUserToGroup(c.Request.Context(), c.Param("class_id"), req.UserID, groupName)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"added": added})
}

// RemoveMember godoc
// DELETE /api/v1/classes/:class_id/groups/:group_name/members/:user_id
// Removes a user from the named group. Removing a non-member is a no-op.
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	groupName := c.Param("group_name")
	if !validator.IsValidGroupName(groupName) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidGroupName)
		return
	}

	err := h.groupService.RemoveUserFromGroup(c.Request.Context(), c.Param("class_id"), c.Param("user_id"), groupName)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"removed": true})
}
