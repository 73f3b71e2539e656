package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modgate/modgate/internal/classifier"
)

// scriptedCaller returns canned responses keyed by operation.
type scriptedCaller struct {
	responses map[classifier.Op]scriptedResponse
	calls     []classifier.Op
}

type scriptedResponse struct {
	status  int
	payload map[string]any
	ok      bool
}

func (s *scriptedCaller) Call(_ context.Context, op classifier.Op, _ ...any) (int, map[string]any, bool) {
	s.calls = append(s.calls, op)
	r := s.responses[op]
	return r.status, r.payload, r.ok
}

func TestSubmitPersistsVerdict(t *testing.T) {
	ctx := context.Background()
	caller := &scriptedCaller{responses: map[classifier.Op]scriptedResponse{
		classifier.OpPostDocument: {status: 200, payload: map[string]any{"allow": false, "signature": "abc123"}, ok: true},
	}}
	svc := NewMemoryService(caller)

	rec, err := svc.Submit(ctx, map[string]string{"content": "buy pills", "author_email": "x@y.com"})
	require.NoError(t, err)
	require.False(t, rec.Allow)
	require.Equal(t, "abc123", rec.Signature)
	require.NotEmpty(t, rec.ID)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "abc123", got.Signature)
}

func TestSubmitRemoteFailure(t *testing.T) {
	caller := &scriptedCaller{responses: map[classifier.Op]scriptedResponse{
		classifier.OpPostDocument: {ok: false},
	}}
	svc := NewMemoryService(caller)

	_, err := svc.Submit(context.Background(), map[string]string{"content": "hi"})
	require.ErrorIs(t, err, ErrRemote)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestOverrideUpdatesRemoteThenLocal(t *testing.T) {
	ctx := context.Background()
	caller := &scriptedCaller{responses: map[classifier.Op]scriptedResponse{
		classifier.OpPostDocument: {status: 200, payload: map[string]any{"allow": false, "signature": "sig1"}, ok: true},
		classifier.OpGetDocument:  {status: 200, payload: map[string]any{"allow": false}, ok: true},
		classifier.OpPutDocument:  {status: 200, payload: map[string]any{}, ok: true},
	}}
	svc := NewMemoryService(caller)

	rec, err := svc.Submit(ctx, map[string]string{"content": "hello"})
	require.NoError(t, err)

	out, err := svc.Override(ctx, rec.ID, true)
	require.NoError(t, err)
	require.True(t, out.Allow)
	require.Equal(t, []classifier.Op{classifier.OpPostDocument, classifier.OpGetDocument, classifier.OpPutDocument}, caller.calls)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.True(t, got.Allow)
}

func TestOverrideRemoteFailureKeepsLocalVerdict(t *testing.T) {
	ctx := context.Background()
	caller := &scriptedCaller{responses: map[classifier.Op]scriptedResponse{
		classifier.OpPostDocument: {status: 200, payload: map[string]any{"allow": false, "signature": "sig1"}, ok: true},
		classifier.OpGetDocument:  {status: 200, payload: map[string]any{"allow": false}, ok: true},
		classifier.OpPutDocument:  {ok: false},
	}}
	svc := NewMemoryService(caller)

	rec, err := svc.Submit(ctx, map[string]string{"content": "hello"})
	require.NoError(t, err)

	_, err = svc.Override(ctx, rec.ID, true)
	require.ErrorIs(t, err, ErrRemote)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.False(t, got.Allow)
}

func TestOverrideUnknownID(t *testing.T) {
	svc := NewMemoryService(&scriptedCaller{responses: map[classifier.Op]scriptedResponse{}})
	_, err := svc.Override(context.Background(), "missing", true)
	require.ErrorIs(t, err, ErrNotFound)
}
