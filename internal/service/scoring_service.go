package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/classpad-app/classpad-backend/internal/config"
	"github.com/classpad-app/classpad-backend/internal/model"
	"github.com/classpad-app/classpad-backend/internal/repository"
)

// ScoringService records quiz results and applies them to group scores.
type ScoringService struct {
	classes ClassStore
	history QuizHistoryStore
	queue   EventQueue
	pub     Publisher
	log     zerolog.Logger
}

// NewScoringService creates a new ScoringService.
func NewScoringService(classes ClassStore, history QuizHistoryStore, queue EventQueue, pub Publisher, log zerolog.Logger) *ScoringService {
	return &ScoringService{
		classes: classes,
		history: history,
		queue:   queue,
		pub:     pub,
		log:     log.With().Str("component", "scoring_service").Logger(),
	}
}

// RecordQuizResult writes a quiz-history record under the class and enqueues
// the quiz-submitted event for the reactor.
func (s *ScoringService) RecordQuizResult(ctx context.Context, classID, userID string, stars int64) (*model.QuizResult, error) {
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		return nil, fmt.Errorf("load class %s: %w", classID, err)
	}

	result := &model.QuizResult{
		ID:        primitive.NewObjectID().Hex(),
		ClassID:   classID,
		UserID:    userID,
		Stars:     stars,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.history.Insert(ctx, result); err != nil {
		return nil, fmt.Errorf("insert quiz result: %w", err)
	}

	event := QuizSubmittedEvent{ClassID: classID, UserID: userID, Stars: stars}
	if err := s.queue.Enqueue(ctx, config.QueueKey.QuizSubmittedQueue, event); err != nil {
		return nil, fmt.Errorf("enqueue quiz submitted event: %w", err)
	}

	return result, nil
}

// ApplyQuizResult is the quiz-result reactor. It locates the submitting
// user's group and increments that group's score by the earned stars.
// Groups are scanned in ascending name order so the target is deterministic
// when a user appears in more than one group. A user in no group is logged
// and skipped.
func (s *ScoringService) ApplyQuizResult(ctx context.Context, classID, userID string, stars int64) error {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Str("class_id", classID).Msg("Class not found, dropping quiz event")
			return nil
		}
		return fmt.Errorf("load class %s: %w", classID, err)
	}

	groupName, found := findUserGroup(class.Groups, userID)
	if !found {
		s.log.Info().Str("class_id", classID).Str("user_id", userID).
			Msg("User is in no group, quiz result not scored")
		return nil
	}

	score, err := s.classes.IncrementGroupScore(ctx, classID, groupName, stars)
	if err != nil {
		return fmt.Errorf("increment score for group %q: %w", groupName, err)
	}

	s.log.Info().
		Str("class_id", classID).
		Str("group", groupName).
		Int64("stars", stars).
		Int64("score", score).
		Msg("Group score incremented")

	update := ScoreUpdate{ClassID: classID, GroupName: groupName, Stars: stars, Score: score}
	if err := s.pub.Publish(ctx, config.CacheKey.ScoreboardChannel(classID), update); err != nil {
		// The score is already committed; a lost broadcast only delays the
		// live view until the next update.
		s.log.Warn().Err(err).Str("class_id", classID).Msg("Scoreboard publish failed")
	}

	return nil
}

// findUserGroup returns the first group, in ascending name order, whose
// member list contains uid.
func findUserGroup(groups map[string]model.Group, uid string) (string, bool) {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, m := range groups[name].Members {
			if m.UID == uid {
				return name, true
			}
		}
	}
	return "", false
}
