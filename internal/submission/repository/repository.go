package repository

import (
	"context"
	"errors"

	"github.com/modgate/modgate/internal/submission"
)

var ErrNotFound = errors.New("submission not found")

// Repository is the storage contract shared by the memory- and Mongo-backed
// implementations.
type Repository interface {
	Create(ctx context.Context, s *submission.Submission) (string, error)
	Get(ctx context.Context, id string) (*submission.Submission, error)
	GetBySignature(ctx context.Context, signature string) (*submission.Submission, error)
	List(ctx context.Context) ([]*submission.Submission, error)
	SetAllow(ctx context.Context, id string, allow bool) error
	Delete(ctx context.Context, id string) error
}
