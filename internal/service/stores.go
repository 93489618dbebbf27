package service

import (
	"context"

	"github.com/classpad-app/classpad-backend/internal/model"
)

// Store interfaces consumed by the services. The mongo-backed repositories
// satisfy them; tests substitute in-memory fakes.

// UserStore is the user document access needed by the services.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	AppendClassSummary(ctx context.Context, userID string, summary model.ClassSummary) (bool, error)
}

// ClassStore is the class document access needed by the services.
type ClassStore interface {
	FindByID(ctx context.Context, id string) (*model.Class, error)
	Insert(ctx context.Context, c *model.Class) error
	AppendStudent(ctx context.Context, classID string, student model.StudentSummary) (bool, error)
	AddGroupMember(ctx context.Context, classID, groupName string, member model.GroupMember) (bool, error)
	RemoveGroupMember(ctx context.Context, classID, groupName, userID string) error
	IncrementGroupScore(ctx context.Context, classID, groupName string, stars int64) (int64, error)
	SetBaseClassID(ctx context.Context, classID, templateID string) error
	IterateAll(ctx context.Context, batchSize int, fn func(model.Class) error) error
}

// InviteStore is the invite document access needed by the services.
type InviteStore interface {
	FindByCode(ctx context.Context, code string) (*model.Invite, error)
	Insert(ctx context.Context, inv *model.Invite) error
	StripLegacyFields(ctx context.Context, code string) error
	IterateAll(ctx context.Context, batchSize int, fn func(model.Invite) error) error
}

// ClassTemplateStore is the template document access needed by the migration.
type ClassTemplateStore interface {
	Insert(ctx context.Context, t *model.ClassTemplate) error
}

// QuizHistoryStore records quiz results.
type QuizHistoryStore interface {
	Insert(ctx context.Context, q *model.QuizResult) error
}

// AdminStore is the admin account access needed by authentication.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// EventQueue carries document-creation events to the reactor workers.
type EventQueue interface {
	Enqueue(ctx context.Context, queue string, payload interface{}) error
}

// Publisher fans out live scoreboard updates to connected clients.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload interface{}) error
}
