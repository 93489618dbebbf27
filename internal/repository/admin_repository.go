package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/classpad-app/classpad-backend/internal/model"
)

const adminCollection = "admins"

// AdminRepository handles maintenance admin accounts.
type AdminRepository struct {
	coll *mongo.Collection
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection(adminCollection)}
}

// EnsureIndexes creates the unique email index. Safe to call on every start.
func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return translate(err)
}

// FindByEmail retrieves an admin account by email.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(a)
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

// Insert creates a new admin account. Returns ErrAlreadyExists if the email
// is taken.
func (r *AdminRepository) Insert(ctx context.Context, a *model.Admin) error {
	_, err := r.coll.InsertOne(ctx, a)
	return translate(err)
}
