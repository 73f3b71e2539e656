package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/modgate/modgate/internal/classifier"
	"github.com/modgate/modgate/internal/submission/service"
)

type stubCaller struct {
	allow bool
	ok    bool
}

func (s *stubCaller) Call(_ context.Context, op classifier.Op, _ ...any) (int, map[string]any, bool) {
	if !s.ok {
		return 0, nil, false
	}
	switch op {
	case classifier.OpPostDocument:
		return 200, map[string]any{"allow": s.allow, "signature": "sig-test"}, true
	case classifier.OpGetDocument:
		return 200, map[string]any{"allow": s.allow}, true
	default:
		return 200, map[string]any{}, true
	}
}

func setup(caller classifier.Caller, auth ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	RegisterSubmissionRoutes(g, service.NewMemoryService(caller), auth...)
	return g
}

func TestSubmissionHandlerFlow(t *testing.T) {
	g := setup(&stubCaller{allow: false, ok: true})

	// submit
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submissions",
		strings.NewReader(`{"data":{"content":"hello","author_email":"x@y.com"}}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var cr map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cr))
	id := cr["id"].(string)
	require.NotEmpty(t, id)
	require.Equal(t, false, cr["allow"])
	require.Equal(t, "sig-test", cr["signature"])

	// get
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/submissions/"+id, nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// list
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// lookup by classifier signature
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/submissions?signature=sig-test", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var bySig map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bySig))
	require.Equal(t, id, bySig["id"])

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/submissions?signature=unknown", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	// moderator override
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/submissions/"+id+"/allow", strings.NewReader(`{"allow":true}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// delete
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/submissions/"+id, nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestSubmitRemoteDown(t *testing.T) {
	g := setup(&stubCaller{ok: false})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(`{"data":{"content":"x"}}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSubmitMissingData(t *testing.T) {
	g := setup(&stubCaller{ok: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOverrideGuardedByAuth(t *testing.T) {
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
	}
	g := setup(&stubCaller{ok: true}, deny)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/submissions/x/allow", strings.NewReader(`{"allow":true}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
