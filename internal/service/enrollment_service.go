package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/classpad-app/classpad-backend/internal/model"
	"github.com/classpad-app/classpad-backend/internal/repository"
)

// JoinResult is the structured outcome of a class join. Domain-rule
// failures (already enrolled) are carried here, not as errors.
type JoinResult struct {
	Res    bool   `json:"res"`
	Result string `json:"result"`
}

// EnrollmentService handles self-enrollment of users into classes.
type EnrollmentService struct {
	users   UserStore
	classes ClassStore
	log     zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(users UserStore, classes ClassStore, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		users:   users,
		classes: classes,
		log:     log.With().Str("component", "enrollment_service").Logger(),
	}
}

// JoinClass enrolls the calling user in a class, denormalizing a class
// summary onto the user document and a student summary onto the class
// document. Each write is an atomic guarded update on its own document, so
// concurrent joins cannot duplicate entries; the two-document pair is not
// transactional, and a failure between the writes leaves the user updated
// but not the class. The next successful join converges both sides.
func (s *EnrollmentService) JoinClass(ctx context.Context, classID, userID string) (*JoinResult, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("load class %s: %w", classID, err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}

	for _, st := range class.Students {
		if st.StudentID == userID {
			return &JoinResult{Res: false, Result: "User already in class"}, nil
		}
	}

	teacherName := ""
	if owner, err := s.users.FindByID(ctx, class.Owner); err == nil {
		teacherName = owner.DisplayName()
	} else if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn().Str("class_id", classID).Str("owner", class.Owner).
			Msg("Class owner not found, leaving teacherName empty")
	} else {
		return nil, fmt.Errorf("load owner %s: %w", class.Owner, err)
	}

	summary := model.ClassSummary{
		ClassID:     classID,
		ClassName:   class.NameOrDefault(),
		ClassIcon:   class.IconOrDefault(),
		TeacherName: teacherName,
	}
	if _, err := s.users.AppendClassSummary(ctx, userID, summary); err != nil {
		return nil, fmt.Errorf("append class summary: %w", err)
	}

	student := model.StudentSummary{
		StudentID:   userID,
		StudentIcon: user.ImageSeed,
		UserName:    user.DisplayName(),
	}
	if student.StudentIcon == "" {
		student.StudentIcon = model.DefaultStudentIcon
	}
	if student.UserName == "" {
		student.UserName = model.DefaultUserName
	}

	added, err := s.classes.AppendStudent(ctx, classID, student)
	if err != nil {
		return nil, fmt.Errorf("append student: %w", err)
	}
	if !added {
		// A concurrent join won the race after our membership scan.
		return &JoinResult{Res: false, Result: "User already in class"}, nil
	}

	s.log.Info().Str("class_id", classID).Str("user_id", userID).Msg("User joined class")

	return &JoinResult{
		Res:    true,
		Result: fmt.Sprintf("User successfully joined class: %s", class.NameOrDefault()),
	}, nil
}
