package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpad-app/classpad-backend/internal/model"
	"github.com/classpad-app/classpad-backend/internal/repository"
)

func newInviteFixture() (*InviteService, *fakeInviteStore) {
	invites := newFakeInviteStore()
	return NewInviteService(invites, zerolog.Nop()), invites
}

func TestMintInvite_CodeShape(t *testing.T) {
	svc, invites := newInviteFixture()

	inv, err := svc.MintInvite(context.Background(), "class-1")
	require.NoError(t, err)
	assert.Equal(t, "class-1", inv.ClassID)
	assert.Len(t, inv.Code, codeLength)
	for _, ch := range inv.Code {
		assert.True(t, strings.ContainsRune(codeAlphabet, ch),
			"code %q contains %q outside the alphabet", inv.Code, ch)
	}
	assert.NotContains(t, inv.Code, "O")
	assert.NotContains(t, inv.Code, "0")
	assert.NotContains(t, inv.Code, "1")

	_, ok := invites.invites[inv.Code]
	assert.True(t, ok, "minted invite not persisted")
}

func TestMintInvite_RetriesOnCollision(t *testing.T) {
	svc, invites := newInviteFixture()

	collisions := 0
	invites.rejectInsert = func(code string) bool {
		if collisions < 3 {
			collisions++
			return true
		}
		return false
	}

	inv, err := svc.MintInvite(context.Background(), "class-1")
	require.NoError(t, err)
	assert.Equal(t, 3, collisions)
	assert.Len(t, inv.Code, codeLength)
}

func TestMintInvite_FallsBackToTimestampCode(t *testing.T) {
	svc, invites := newInviteFixture()

	// Every random draw collides; only the fallback shape gets through.
	invites.rejectInsert = func(code string) bool {
		return !strings.HasPrefix(code, "CL")
	}

	inv, err := svc.MintInvite(context.Background(), "class-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(inv.Code, "CL"))
	assert.Len(t, inv.Code, 8)
}

func TestMintInvite_CodeSpaceExhausted(t *testing.T) {
	svc, invites := newInviteFixture()

	invites.rejectInsert = func(string) bool { return true }

	_, err := svc.MintInvite(context.Background(), "class-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCodeSpaceExhausted))
}

func TestMintInvite_StorageError(t *testing.T) {
	svc, invites := newInviteFixture()

	invites.insertErr = repository.ErrTransient

	_, err := svc.MintInvite(context.Background(), "class-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrTransient))
}

func TestFallbackCode(t *testing.T) {
	assert.Equal(t, "CL890123", fallbackCode(time.UnixMilli(1234567890123)))
	// Low remainders are zero-padded to keep the code length stable.
	assert.Equal(t, "CL000042", fallbackCode(time.UnixMilli(42_000_042)))
}

func TestResolve(t *testing.T) {
	svc, invites := newInviteFixture()
	invites.put(model.Invite{Code: "ABC234", ClassID: "class-1"})

	inv, err := svc.Resolve(context.Background(), "ABC234")
	require.NoError(t, err)
	assert.Equal(t, "class-1", inv.ClassID)

	_, err = svc.Resolve(context.Background(), "NOPE22")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
