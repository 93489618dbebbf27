package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/classpad-app/classpad-backend/internal/model"
	"github.com/classpad-app/classpad-backend/internal/repository"
	"github.com/classpad-app/classpad-backend/internal/validator"
)

// ErrBadGroupName is returned when a group name cannot be used as a
// document path key.
var ErrBadGroupName = errors.New("invalid group name")

// GroupService handles membership of named sub-groups within a class.
// Group identity is the groupName argument throughout.
type GroupService struct {
	users   UserStore
	classes ClassStore
	log     zerolog.Logger
}

// NewGroupService creates a new GroupService.
func NewGroupService(users UserStore, classes ClassStore, log zerolog.Logger) *GroupService {
	return &GroupService{
		users:   users,
		classes: classes,
		log:     log.With().Str("component", "group_service").Logger(),
	}
}

// AddUserToGroup adds a member record for userID into the named group,
// creating the groups map or the group on first use. Returns false without
// mutation when the user or class is missing, or when the user is already a
// member of that group.
func (s *GroupService) AddUserToGroup(ctx context.Context, classID, userID, groupName string) (bool, error) {
	if !validator.IsValidGroupName(groupName) {
		return false, ErrBadGroupName
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Str("user_id", userID).Msg("User not found, cannot add to group")
		}
		return false, fmt.Errorf("load user %s: %w", userID, err)
	}

	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Str("class_id", classID).Msg("Class not found, cannot add to group")
		}
		return false, fmt.Errorf("load class %s: %w", classID, err)
	}

	member := model.GroupMember{
		UID:  userID,
		Name: user.DisplayName(),
		Icon: user.ImageSeed,
	}

	added, err := s.classes.AddGroupMember(ctx, classID, groupName, member)
	if err != nil {
		return false, fmt.Errorf("add group member: %w", err)
	}
	if added {
		s.log.Info().
			Str("class_id", classID).
			Str("user_id", userID).
			Str("group", groupName).
			Msg("User added to group")
	}
	return added, nil
}

// RemoveUserFromGroup removes any member record matching userID from the
// named group. Removing a user that is not a member succeeds as a no-op;
// a missing class or groups map is an error.
func (s *GroupService) RemoveUserFromGroup(ctx context.Context, classID, userID, groupName string) error {
	if !validator.IsValidGroupName(groupName) {
		return ErrBadGroupName
	}

	if err := s.classes.RemoveGroupMember(ctx, classID, groupName, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Str("class_id", classID).Str("group", groupName).
				Msg("Class or groups map not found, cannot remove from group")
		}
		return err
	}

	s.log.Info().
		Str("class_id", classID).
		Str("user_id", userID).
		Str("group", groupName).
		Msg("User removed from group")
	return nil
}
