package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/classpad-app/classpad-backend/internal/model"
)

const userCollection = "users"

// UserRepository handles user document access.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(userCollection)}
}

// FindByID retrieves a user by its ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(u)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// AppendClassSummary adds a class summary to the user's classes list unless
// an entry with the same classId is already present. The membership check
// and the append are a single atomic update on the user document, so
// concurrent joins cannot produce duplicate entries. Creates the list if the
// field is absent.
//
// Returns true if the entry was appended, false if it already existed.
func (r *UserRepository) AppendClassSummary(ctx context.Context, userID string, summary model.ClassSummary) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"_id":             userID,
			"classes.classId": bson.M{"$ne": summary.ClassID},
		},
		bson.M{"$addToSet": bson.M{"classes": summary}},
	)
	if err != nil {
		return false, translate(err)
	}
	return res.MatchedCount > 0, nil
}
