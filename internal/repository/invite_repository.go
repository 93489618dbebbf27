package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/classpad-app/classpad-backend/internal/model"
)

const inviteCollection = "invites"

// InviteRepository handles invite document access. The join code is the
// document ID, so code uniqueness is enforced by the store: inserting a
// colliding code fails with ErrAlreadyExists instead of silently
// overwriting.
type InviteRepository struct {
	coll *mongo.Collection
}

// NewInviteRepository creates a new InviteRepository.
func NewInviteRepository(db *mongo.Database) *InviteRepository {
	return &InviteRepository{coll: db.Collection(inviteCollection)}
}

// FindByCode retrieves an invite by its join code.
func (r *InviteRepository) FindByCode(ctx context.Context, code string) (*model.Invite, error) {
	inv := &model.Invite{}
	err := r.coll.FindOne(ctx, bson.M{"_id": code}).Decode(inv)
	if err != nil {
		return nil, translate(err)
	}
	return inv, nil
}

// Insert creates a new invite. Returns ErrAlreadyExists if the code is
// taken.
func (r *InviteRepository) Insert(ctx context.Context, inv *model.Invite) error {
	_, err := r.coll.InsertOne(ctx, inv)
	return translate(err)
}

// StripLegacyFields removes the redundant display fields the schema-v2
// migration retires, leaving the invite as a pure code→classId pointer.
// Unsetting fields that are already absent is a no-op.
func (r *InviteRepository) StripLegacyFields(ctx context.Context, code string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": code},
		bson.M{"$unset": bson.M{
			"className":   "",
			"classIcon":   "",
			"classHour":   "",
			"classDesc":   "",
			"teacherName": "",
		}},
	)
	return translate(err)
}

// IterateAll streams every invite document in _id order, in cursor batches
// of batchSize, invoking fn per document.
func (r *InviteRepository) IterateAll(ctx context.Context, batchSize int, fn func(model.Invite) error) error {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetBatchSize(int32(batchSize))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return translate(err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var inv model.Invite
		if err := cur.Decode(&inv); err != nil {
			return err
		}
		if err := fn(inv); err != nil {
			return err
		}
	}
	return translate(cur.Err())
}
