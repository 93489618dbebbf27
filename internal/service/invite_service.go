package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/classpad-app/classpad-backend/internal/model"
	"github.com/classpad-app/classpad-backend/internal/repository"
)

const (
	// codeAlphabet excludes visually ambiguous characters (O, 0, 1).
	codeAlphabet      = "ABCDEFGHIJKLMNPQRSTUVWXYZ23456789"
	codeLength        = 6
	maxRandomAttempts = 10
	// maxFallbackAttempts bounds the timestamp fallback, which is also
	// collision-checked since epoch suffixes are not collision-free under
	// concurrent creation.
	maxFallbackAttempts = 10
)

// ErrCodeSpaceExhausted is returned when neither the random draws nor the
// timestamp fallback produced an unused code.
var ErrCodeSpaceExhausted = errors.New("could not mint a unique invite code")

// InviteService mints join codes and resolves them back to classes.
type InviteService struct {
	invites InviteStore
	log     zerolog.Logger
}

// NewInviteService creates a new InviteService.
func NewInviteService(invites InviteStore, log zerolog.Logger) *InviteService {
	return &InviteService{
		invites: invites,
		log:     log.With().Str("component", "invite_service").Logger(),
	}
}

// MintInvite creates an invite with a unique join code for the class.
// Uniqueness is enforced by inserting with the code as the document ID:
// a collision fails the insert and the next candidate is tried. Up to
// maxRandomAttempts random codes are drawn before falling back to a
// deterministic timestamp-suffixed code, itself retried on collision.
func (s *InviteService) MintInvite(ctx context.Context, classID string) (*model.Invite, error) {
	for attempt := 0; attempt < maxRandomAttempts; attempt++ {
		inv := &model.Invite{
			Code:      randomCode(),
			ClassID:   classID,
			CreatedAt: time.Now().UTC(),
		}
		err := s.invites.Insert(ctx, inv)
		if errors.Is(err, repository.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("insert invite: %w", err)
		}
		return inv, nil
	}

	s.log.Warn().Str("class_id", classID).
		Msg("Random invite codes exhausted, using timestamp fallback")

	for attempt := 0; attempt < maxFallbackAttempts; attempt++ {
		inv := &model.Invite{
			Code:      fallbackCode(time.Now()),
			ClassID:   classID,
			CreatedAt: time.Now().UTC(),
		}
		err := s.invites.Insert(ctx, inv)
		if errors.Is(err, repository.ErrAlreadyExists) {
			time.Sleep(time.Millisecond) // Next millisecond, next code.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("insert invite: %w", err)
		}
		return inv, nil
	}

	return nil, ErrCodeSpaceExhausted
}

// Resolve looks up the class an invite code points at.
func (s *InviteService) Resolve(ctx context.Context, code string) (*model.Invite, error) {
	return s.invites.FindByCode(ctx, code)
}

// randomCode draws codeLength characters from codeAlphabet using crypto/rand.
func randomCode() string {
	code := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range code {
		n, _ := rand.Int(rand.Reader, max)
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code)
}

// fallbackCode builds "CL" + the last 6 digits of the epoch-millisecond
// timestamp.
func fallbackCode(now time.Time) string {
	return fmt.Sprintf("CL%06d", now.UnixMilli()%1_000_000)
}
