package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/classpad-app/classpad-backend/internal/model"
)

const quizHistoryCollection = "quizHistory"

// QuizHistoryRepository handles quiz-history document access. Records are
// written once to drive scoring and never read back by this service.
type QuizHistoryRepository struct {
	coll *mongo.Collection
}

// NewQuizHistoryRepository creates a new QuizHistoryRepository.
func NewQuizHistoryRepository(db *mongo.Database) *QuizHistoryRepository {
	return &QuizHistoryRepository{coll: db.Collection(quizHistoryCollection)}
}

// Insert records a quiz result under a class.
func (r *QuizHistoryRepository) Insert(ctx context.Context, q *model.QuizResult) error {
	_, err := r.coll.InsertOne(ctx, q)
	return translate(err)
}
