package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/classpad-app/classpad-backend/internal/model"
)

const classCollection = "classes"

// ClassRepository handles class document access. All membership and score
// mutations are single-document atomic updates; the guard filters make the
// usual read-check-write races impossible within one document.
type ClassRepository struct {
	coll *mongo.Collection
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(db *mongo.Database) *ClassRepository {
	return &ClassRepository{coll: db.Collection(classCollection)}
}

// FindByID retrieves a class by its ID.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*model.Class, error) {
	c := &model.Class{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(c)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// Insert creates a new class document.
func (r *ClassRepository) Insert(ctx context.Context, c *model.Class) error {
	_, err := r.coll.InsertOne(ctx, c)
	return translate(err)
}

// AppendStudent adds a student summary to the class's students list unless
// an entry with the same studentId is already present. Creates the list if
// the field is absent. Returns true if the entry was appended.
func (r *ClassRepository) AppendStudent(ctx context.Context, classID string, student model.StudentSummary) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"_id":                classID,
			"students.studentId": bson.M{"$ne": student.StudentID},
		},
		bson.M{"$addToSet": bson.M{"students": student}},
	)
	if err != nil {
		return false, translate(err)
	}
	return res.MatchedCount > 0, nil
}

// AddGroupMember adds a member record to groups.<groupName>.members,
// creating the groups map and the named group on first use. The guard
// excludes classes whose group already holds the member, so the check and
// the append are one atomic update. Returns true if the member was added.
func (r *ClassRepository) AddGroupMember(ctx context.Context, classID, groupName string, member model.GroupMember) (bool, error) {
	membersPath := "groups." + groupName + ".members"
	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"_id":       classID,
			membersPath: bson.M{"$not": bson.M{"$elemMatch": bson.M{"uId": member.UID}}},
		},
		bson.M{"$addToSet": bson.M{membersPath: member}},
	)
	if err != nil {
		return false, translate(err)
	}
	return res.MatchedCount > 0, nil
}

// RemoveGroupMember removes any record matching {uId: userID} from
// groups.<groupName>.members. Requires the class to have a groups map;
// removing a user that is not a member is a no-op. Returns ErrNotFound when
// the class or its groups map is absent.
func (r *ClassRepository) RemoveGroupMember(ctx context.Context, classID, groupName, userID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"_id":    classID,
			"groups": bson.M{"$exists": true},
		},
		bson.M{"$pull": bson.M{"groups." + groupName + ".members": bson.M{"uId": userID}}},
	)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementGroupScore atomically adds stars to groups.<groupName>.score and
// returns the resulting score. An absent score field starts at zero, so the
// first increment sets it to stars. Returns ErrNotFound when the class or
// the named group is absent.
func (r *ClassRepository) IncrementGroupScore(ctx context.Context, classID, groupName string, stars int64) (int64, error) {
	var updated model.Class
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{
			"_id":                 classID,
			"groups." + groupName: bson.M{"$exists": true},
		},
		bson.M{"$inc": bson.M{"groups." + groupName + ".score": stars}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return 0, translate(err)
	}
	return updated.Groups[groupName].Score, nil
}

// SetBaseClassID stamps a class section with the template it derives from.
func (r *ClassRepository) SetBaseClassID(ctx context.Context, classID, templateID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": classID},
		bson.M{"$set": bson.M{"baseClassId": templateID}},
	)
	return translate(err)
}

// IterateAll streams every class document in _id order, in cursor batches of
// batchSize, invoking fn per document. Bounded memory regardless of
// collection size. Iteration stops at the first fn error.
func (r *ClassRepository) IterateAll(ctx context.Context, batchSize int, fn func(model.Class) error) error {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetBatchSize(int32(batchSize))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return translate(err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var c model.Class
		if err := cur.Decode(&c); err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
	}
	return translate(cur.Err())
}
