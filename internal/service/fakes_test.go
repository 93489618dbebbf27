package service

import (
	"context"
	"sort"

	"github.com/classpad-app/classpad-backend/internal/model"
	"github.com/classpad-app/classpad-backend/internal/repository"
)

// In-memory fakes for the store interfaces. They mirror the guarded-update
// semantics of the mongo repositories: membership guards are evaluated
// against the stored document, and "not matched" surfaces the same way.

type fakeUserStore struct {
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) put(u model.User) {
	stored := u
	f.users[u.ID] = &stored
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUserStore) AppendClassSummary(_ context.Context, userID string, summary model.ClassSummary) (bool, error) {
	u, ok := f.users[userID]
	if !ok {
		return false, nil
	}
	for _, s := range u.Classes {
		if s.ClassID == summary.ClassID {
			return false, nil
		}
	}
	u.Classes = append(u.Classes, summary)
	return true, nil
}

type fakeClassStore struct {
	classes map[string]*model.Class
	// loseAppendRace makes the next AppendStudent report "already present"
	// as if a concurrent join landed between the caller's read and write.
	loseAppendRace bool
}

func newFakeClassStore() *fakeClassStore {
	return &fakeClassStore{classes: make(map[string]*model.Class)}
}

func (f *fakeClassStore) put(c model.Class) {
	stored := c
	f.classes[c.ID] = &stored
}

func (f *fakeClassStore) FindByID(_ context.Context, id string) (*model.Class, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeClassStore) Insert(_ context.Context, c *model.Class) error {
	if _, ok := f.classes[c.ID]; ok {
		return repository.ErrAlreadyExists
	}
	stored := *c
	f.classes[c.ID] = &stored
	return nil
}

func (f *fakeClassStore) AppendStudent(_ context.Context, classID string, student model.StudentSummary) (bool, error) {
	if f.loseAppendRace {
		f.loseAppendRace = false
		return false, nil
	}
	c, ok := f.classes[classID]
	if !ok {
		return false, nil
	}
	for _, st := range c.Students {
		if st.StudentID == student.StudentID {
			return false, nil
		}
	}
	c.Students = append(c.Students, student)
	return true, nil
}

func (f *fakeClassStore) AddGroupMember(_ context.Context, classID, groupName string, member model.GroupMember) (bool, error) {
	c, ok := f.classes[classID]
	if !ok {
		return false, nil
	}
	if c.Groups == nil {
		c.Groups = make(map[string]model.Group)
	}
	g := c.Groups[groupName]
	for _, m := range g.Members {
		if m.UID == member.UID {
			return false, nil
		}
	}
	g.Members = append(g.Members, member)
	c.Groups[groupName] = g
	return true, nil
}

func (f *fakeClassStore) RemoveGroupMember(_ context.Context, classID, groupName, userID string) error {
	c, ok := f.classes[classID]
	if !ok || c.Groups == nil {
		return repository.ErrNotFound
	}
	g, ok := c.Groups[groupName]
	if !ok {
		return nil // $pull on an absent path matches the document, no-op.
	}
	kept := g.Members[:0]
	for _, m := range g.Members {
		if m.UID != userID {
			kept = append(kept, m)
		}
	}
	g.Members = kept
	c.Groups[groupName] = g
	return nil
}

func (f *fakeClassStore) IncrementGroupScore(_ context.Context, classID, groupName string, stars int64) (int64, error) {
	c, ok := f.classes[classID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	g, ok := c.Groups[groupName]
	if !ok {
		return 0, repository.ErrNotFound
	}
	g.Score += stars
	c.Groups[groupName] = g
	return g.Score, nil
}

func (f *fakeClassStore) SetBaseClassID(_ context.Context, classID, templateID string) error {
	c, ok := f.classes[classID]
	if !ok {
		return repository.ErrNotFound
	}
	c.BaseClassID = templateID
	return nil
}

func (f *fakeClassStore) IterateAll(_ context.Context, _ int, fn func(model.Class) error) error {
	ids := make([]string, 0, len(f.classes))
	for id := range f.classes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := fn(*f.classes[id]); err != nil {
			return err
		}
	}
	return nil
}

type fakeInviteStore struct {
	invites map[string]*model.Invite
	// rejectInsert simulates a code collision for any candidate it accepts.
	rejectInsert func(code string) bool
	insertErr    error
}

func newFakeInviteStore() *fakeInviteStore {
	return &fakeInviteStore{invites: make(map[string]*model.Invite)}
}

func (f *fakeInviteStore) put(inv model.Invite) {
	stored := inv
	f.invites[inv.Code] = &stored
}

func (f *fakeInviteStore) FindByCode(_ context.Context, code string) (*model.Invite, error) {
	inv, ok := f.invites[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *inv
	return &out, nil
}

func (f *fakeInviteStore) Insert(_ context.Context, inv *model.Invite) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.rejectInsert != nil && f.rejectInsert(inv.Code) {
		return repository.ErrAlreadyExists
	}
	if _, ok := f.invites[inv.Code]; ok {
		return repository.ErrAlreadyExists
	}
	stored := *inv
	f.invites[inv.Code] = &stored
	return nil
}

func (f *fakeInviteStore) StripLegacyFields(_ context.Context, code string) error {
	inv, ok := f.invites[code]
	if !ok {
		return repository.ErrNotFound
	}
	inv.ClassName = ""
	inv.ClassIcon = ""
	inv.ClassHour = ""
	inv.ClassDesc = ""
	inv.TeacherName = ""
	return nil
}

func (f *fakeInviteStore) IterateAll(_ context.Context, _ int, fn func(model.Invite) error) error {
	codes := make([]string, 0, len(f.invites))
	for code := range f.invites {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if err := fn(*f.invites[code]); err != nil {
			return err
		}
	}
	return nil
}

type fakeTemplateStore struct {
	templates []*model.ClassTemplate
}

func (f *fakeTemplateStore) Insert(_ context.Context, t *model.ClassTemplate) error {
	stored := *t
	f.templates = append(f.templates, &stored)
	return nil
}

type fakeHistoryStore struct {
	results []*model.QuizResult
}

func (f *fakeHistoryStore) Insert(_ context.Context, q *model.QuizResult) error {
	stored := *q
	f.results = append(f.results, &stored)
	return nil
}

type queuedEvent struct {
	queue   string
	payload interface{}
}

type fakeQueue struct {
	events     []queuedEvent
	enqueueErr error
}

func (f *fakeQueue) Enqueue(_ context.Context, queue string, payload interface{}) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.events = append(f.events, queuedEvent{queue: queue, payload: payload})
	return nil
}

type publishedMessage struct {
	channel string
	payload interface{}
}

type fakePublisher struct {
	messages   []publishedMessage
	publishErr error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, payload interface{}) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.messages = append(f.messages, publishedMessage{channel: channel, payload: payload})
	return nil
}
