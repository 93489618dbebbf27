package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/classpad-app/classpad-backend/internal/config"
	"github.com/classpad-app/classpad-backend/internal/model"
	"github.com/classpad-app/classpad-backend/internal/repository"
)

// ClassService handles class creation and the class-creation reactor.
type ClassService struct {
	classes ClassStore
	users   UserStore
	invites *InviteService
	queue   EventQueue
	log     zerolog.Logger
}

// NewClassService creates a new ClassService.
func NewClassService(classes ClassStore, users UserStore, invites *InviteService, queue EventQueue, log zerolog.Logger) *ClassService {
	return &ClassService{
		classes: classes,
		users:   users,
		invites: invites,
		queue:   queue,
		log:     log.With().Str("component", "class_service").Logger(),
	}
}

// CreateClassInput carries the descriptive fields of a new class section.
type CreateClassInput struct {
	ClassName string
	ClassIcon string
	ClassDesc string
	ClassHour string
}

// CreateClass writes a new class document owned by ownerID and enqueues the
// class-created event for the reactor. The reactor work (owner summary,
// invite minting) deliberately does not run inline: the document write is
// the trigger, same as a store-side creation would be.
func (s *ClassService) CreateClass(ctx context.Context, ownerID string, in CreateClassInput) (*model.Class, error) {
	class := &model.Class{
		ID:        primitive.NewObjectID().Hex(),
		Owner:     ownerID,
		ClassName: in.ClassName,
		ClassIcon: in.ClassIcon,
		ClassDesc: in.ClassDesc,
		ClassHour: in.ClassHour,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.classes.Insert(ctx, class); err != nil {
		return nil, fmt.Errorf("insert class: %w", err)
	}

	if err := s.queue.Enqueue(ctx, config.QueueKey.ClassCreatedQueue, ClassCreatedEvent{ClassID: class.ID}); err != nil {
		// The document exists but the reactor will never fire for it.
		// Surface the error; the caller may retry creation under a new ID.
		return nil, fmt.Errorf("enqueue class created event: %w", err)
	}

	return class, nil
}

// GetClass retrieves a class by ID.
func (s *ClassService) GetClass(ctx context.Context, id string) (*model.Class, error) {
	return s.classes.FindByID(ctx, id)
}

// ReflectClassCreation is the class-creation reactor. It denormalizes the
// new class onto the owner's document and mints a join invite. A missing
// owner aborts without retry or compensation — the class stays without a
// reflected summary, matching the documented behavior.
func (s *ClassService) ReflectClassCreation(ctx context.Context, classID string) error {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Str("class_id", classID).Msg("Class data is missing, dropping event")
			return nil
		}
		return fmt.Errorf("load class %s: %w", classID, err)
	}

	owner, err := s.users.FindByID(ctx, class.Owner)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Str("class_id", classID).Str("owner", class.Owner).
				Msg("Owner data is missing, dropping event")
			return nil
		}
		return fmt.Errorf("load owner %s: %w", class.Owner, err)
	}

	teacherName := owner.DisplayName()
	if teacherName == "" {
		teacherName = "Teacher"
	}

	summary := model.ClassSummary{
		ClassID:     classID,
		ClassName:   class.NameOrDefault(),
		ClassIcon:   class.IconOrDefault(),
		TeacherName: teacherName,
	}
	if _, err := s.users.AppendClassSummary(ctx, class.Owner, summary); err != nil {
		return fmt.Errorf("append class summary to owner: %w", err)
	}

	invite, err := s.invites.MintInvite(ctx, classID)
	if err != nil {
		return fmt.Errorf("mint invite: %w", err)
	}

	s.log.Info().
		Str("class_id", classID).
		Str("invite_code", invite.Code).
		Msg("Class creation reflected")

	return nil
}
