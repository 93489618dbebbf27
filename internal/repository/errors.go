package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Storage error taxonomy. Handlers map these onto HTTP codes; callers decide
// per kind whether a retry makes sense (only ErrTransient does).
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
	ErrTransient     = errors.New("transient storage error")
)

// translate maps a mongo-driver error onto the storage taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrAlreadyExists
	case mongo.IsTimeout(err), mongo.IsNetworkError(err),
		errors.Is(err, context.DeadlineExceeded):
		return errors.Join(ErrTransient, err)
	default:
		return err
	}
}
