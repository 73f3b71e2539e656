package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/modgate/modgate/internal/classifier"
	"github.com/modgate/modgate/internal/submission"
	"github.com/modgate/modgate/internal/submission/repository"
	"github.com/modgate/modgate/pkg/metrics"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrRemote means the classification service rejected or failed the
	// call; local state is left untouched when it is returned.
	ErrRemote = errors.New("remote classifier call failed")
)

// Service defines the moderation operations used by the handler layer.
type Service interface {
	Submit(ctx context.Context, data map[string]string) (*submission.Submission, error)
	Get(ctx context.Context, id string) (*submission.Submission, error)
	GetBySignature(ctx context.Context, signature string) (*submission.Submission, error)
	List(ctx context.Context) ([]*submission.Submission, error)
	Override(ctx context.Context, id string, allow bool) (*submission.Submission, error)
	Delete(ctx context.Context, id string) error
}

// NewService returns a Service using the given classifier caller and storage.
func NewService(caller classifier.Caller, repo repository.Repository) Service {
	return &svc{caller: caller, repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService(caller classifier.Caller) Service {
	return NewService(caller, repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection. Caller is
// responsible for creating the collection (and client) and passing it in.
func NewMongoService(caller classifier.Caller, col *mongo.Collection) Service {
	return NewService(caller, repository.NewMongoRepo(col))
}

type svc struct {
	caller classifier.Caller
	repo   repository.Repository
}

// Submit sends the payload through the classifier's create path and persists
// the resulting verdict and signature.
func (s *svc) Submit(ctx context.Context, data map[string]string) (*submission.Submission, error) {
	doc := classifier.New(s.caller)
	doc.Data = data
	if !doc.Save(ctx) {
		return nil, ErrRemote
	}
	metrics.Verdicts.WithLabelValues(verdictLabel(doc.Allow)).Inc()

	rec := &submission.Submission{
		Data:      data,
		Allow:     doc.Allow,
		Signature: doc.Signature(),
	}
	if _, err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *svc) Get(ctx context.Context, id string) (*submission.Submission, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// GetBySignature resolves the local record for a classifier signature, the
// identifier moderation tooling usually has in hand.
func (s *svc) GetBySignature(ctx context.Context, signature string) (*submission.Submission, error) {
	rec, err := s.repo.GetBySignature(ctx, signature)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *svc) List(ctx context.Context) ([]*submission.Submission, error) {
	return s.repo.List(ctx)
}

// Override re-submits the moderator's allow decision through the classifier's
// update path, then records it locally. The remote service is updated first so
// a failure leaves the stored verdict consistent with the remote one.
func (s *svc) Override(ctx context.Context, id string, allow bool) (*submission.Submission, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := classifier.Find(ctx, s.caller, rec.Signature)
	if doc == nil {
		return nil, ErrRemote
	}
	doc.Allow = allow
	if !doc.Save(ctx) {
		return nil, ErrRemote
	}

	if err := s.repo.SetAllow(ctx, id, allow); err != nil {
		return nil, err
	}
	rec.Allow = allow
	return rec, nil
}

func (s *svc) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func verdictLabel(allow bool) string {
	if allow {
		return "allow"
	}
	return "deny"
}
