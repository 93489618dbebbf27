package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpad-app/classpad-backend/internal/config"
	"github.com/classpad-app/classpad-backend/internal/model"
	"github.com/classpad-app/classpad-backend/internal/repository"
)

func newScoringFixture() (*ScoringService, *fakeClassStore, *fakeHistoryStore, *fakeQueue, *fakePublisher) {
	classes := newFakeClassStore()
	history := &fakeHistoryStore{}
	queue := &fakeQueue{}
	pub := &fakePublisher{}
	svc := NewScoringService(classes, history, queue, pub, zerolog.Nop())
	return svc, classes, history, queue, pub
}

func TestRecordQuizResult(t *testing.T) {
	svc, classes, history, queue, _ := newScoringFixture()
	classes.put(model.Class{ID: "class-1"})

	result, err := svc.RecordQuizResult(context.Background(), "class-1", "user-1", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, int64(5), result.Stars)

	require.Len(t, history.results, 1)
	assert.Equal(t, "class-1", history.results[0].ClassID)
	assert.Equal(t, "user-1", history.results[0].UserID)

	require.Len(t, queue.events, 1)
	assert.Equal(t, config.QueueKey.QuizSubmittedQueue, queue.events[0].queue)
	event, ok := queue.events[0].payload.(QuizSubmittedEvent)
	require.True(t, ok)
	assert.Equal(t, QuizSubmittedEvent{ClassID: "class-1", UserID: "user-1", Stars: 5}, event)
}

func TestRecordQuizResult_MissingClass(t *testing.T) {
	svc, _, history, queue, _ := newScoringFixture()

	_, err := svc.RecordQuizResult(context.Background(), "no-such-class", "user-1", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	assert.Empty(t, history.results)
	assert.Empty(t, queue.events)
}

func TestApplyQuizResult_IncrementsGroupScore(t *testing.T) {
	svc, classes, _, _, pub := newScoringFixture()

	classes.put(model.Class{
		ID: "class-1",
		Groups: map[string]model.Group{
			"blue": {Members: []model.GroupMember{{UID: "user-1"}}, Score: 5},
		},
	})

	err := svc.ApplyQuizResult(context.Background(), "class-1", "user-1", 3)
	require.NoError(t, err)

	class, _ := classes.FindByID(context.Background(), "class-1")
	assert.Equal(t, int64(8), class.Groups["blue"].Score)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, config.CacheKey.ScoreboardChannel("class-1"), pub.messages[0].channel)
	update, ok := pub.messages[0].payload.(ScoreUpdate)
	require.True(t, ok)
	assert.Equal(t, ScoreUpdate{ClassID: "class-1", GroupName: "blue", Stars: 3, Score: 8}, update)
}

func TestApplyQuizResult_AbsentScoreStartsAtZero(t *testing.T) {
	svc, classes, _, _, _ := newScoringFixture()

	classes.put(model.Class{
		ID: "class-1",
		Groups: map[string]model.Group{
			"blue": {Members: []model.GroupMember{{UID: "user-1"}}},
		},
	})

	// 5 then 3 on a group with no score field yet accumulates to 8.
	require.NoError(t, svc.ApplyQuizResult(context.Background(), "class-1", "user-1", 5))
	require.NoError(t, svc.ApplyQuizResult(context.Background(), "class-1", "user-1", 3))

	class, _ := classes.FindByID(context.Background(), "class-1")
	assert.Equal(t, int64(8), class.Groups["blue"].Score)
}

func TestApplyQuizResult_DeterministicGroupOrder(t *testing.T) {
	svc, classes, _, _, _ := newScoringFixture()

	// The user appears in two groups; ascending name order picks "alpha".
	classes.put(model.Class{
		ID: "class-1",
		Groups: map[string]model.Group{
			"zeta":  {Members: []model.GroupMember{{UID: "user-1"}}},
			"alpha": {Members: []model.GroupMember{{UID: "user-1"}}},
		},
	})

	err := svc.ApplyQuizResult(context.Background(), "class-1", "user-1", 2)
	require.NoError(t, err)

	class, _ := classes.FindByID(context.Background(), "class-1")
	assert.Equal(t, int64(2), class.Groups["alpha"].Score)
	assert.Equal(t, int64(0), class.Groups["zeta"].Score)
}

func TestApplyQuizResult_UserInNoGroup(t *testing.T) {
	svc, classes, _, _, pub := newScoringFixture()

	classes.put(model.Class{
		ID: "class-1",
		Groups: map[string]model.Group{
			"blue": {Members: []model.GroupMember{{UID: "someone-else"}}},
		},
	})

	err := svc.ApplyQuizResult(context.Background(), "class-1", "user-1", 3)
	require.NoError(t, err)

	class, _ := classes.FindByID(context.Background(), "class-1")
	assert.Equal(t, int64(0), class.Groups["blue"].Score)
	assert.Empty(t, pub.messages)
}

func TestApplyQuizResult_MissingClassDropsEvent(t *testing.T) {
	svc, _, _, _, _ := newScoringFixture()

	// Deleted classes drop the event instead of requeueing forever.
	err := svc.ApplyQuizResult(context.Background(), "no-such-class", "user-1", 3)
	assert.NoError(t, err)
}

func TestApplyQuizResult_PublishFailureIsNonFatal(t *testing.T) {
	svc, classes, _, _, pub := newScoringFixture()
	pub.publishErr = errors.New("redis down")

	classes.put(model.Class{
		ID: "class-1",
		Groups: map[string]model.Group{
			"blue": {Members: []model.GroupMember{{UID: "user-1"}}},
		},
	})

	err := svc.ApplyQuizResult(context.Background(), "class-1", "user-1", 3)
	require.NoError(t, err)

	// The increment still landed.
	class, _ := classes.FindByID(context.Background(), "class-1")
	assert.Equal(t, int64(3), class.Groups["blue"].Score)
}

func TestFindUserGroup_EmptyGroups(t *testing.T) {
	_, found := findUserGroup(nil, "user-1")
	assert.False(t, found)

	_, found = findUserGroup(map[string]model.Group{}, "user-1")
	assert.False(t, found)
}
