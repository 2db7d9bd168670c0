package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/handler/http/handler"
	hdlUC "notify-svc/internal/usecase/handler"
)

/* ───────── インメモリスタブ ───────── */

type stubRepo struct {
	rows map[string]*entity.Handler
	err  error
}

func (s *stubRepo) Upsert(_ context.Context, h *entity.Handler) error {
	if s.err != nil {
		return s.err
	}
	if s.rows == nil {
		s.rows = map[string]*entity.Handler{}
	}
	s.rows[h.Topic] = h
	return nil
}

func (s *stubRepo) Get(_ context.Context, topic string) (*entity.Handler, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[topic], nil
}

func (s *stubRepo) ListByType(_ context.Context, t entity.HandlerType) ([]*entity.Handler, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Handler
	for _, h := range s.rows {
		if h.Type == t {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out, nil
}

func newMux(repo *stubRepo) *http.ServeMux {
	mux := http.NewServeMux()
	handler.Register(mux, &hdlUC.Service{Repo: repo})
	return mux
}

func serve(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rr
}

func errorType(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["type"]
}

/* ───────── POST /handlers/{type} ───────── */

func TestCreateHandler_Success(t *testing.T) {
	repo := &stubRepo{}
	rr := serve(newMux(repo), http.MethodPost, "/handlers/email",
		`{"topic":"Alerts","settings":{"toAddr":["ops@example.com"]}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"topic":"alerts","settings":{"toAddr":["ops@example.com"]}}`, rr.Body.String())
	require.Contains(t, repo.rows, "alerts")
	assert.Equal(t, entity.HandlerTypeEmail, repo.rows["alerts"].Type)
}

func TestCreateHandler_WithoutSettings(t *testing.T) {
	repo := &stubRepo{}
	rr := serve(newMux(repo), http.MethodPost, "/handlers/email", `{"topic":"alerts"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"topic":"alerts","settings":null}`, rr.Body.String())
	assert.Nil(t, repo.rows["alerts"].Settings)
}

func TestCreateHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		repo   *stubRepo
		status int
		kind   string
	}{
		{"unknown type", "/handlers/sms", `{"topic":"a"}`, &stubRepo{}, http.StatusNotFound, "NOT_FOUND"},
		{"not json", "/handlers/email", `topic=a`, &stubRepo{}, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing topic", "/handlers/email", `{"settings":{}}`, &stubRepo{}, http.StatusBadRequest, "MISSING_ATTRIBUTE"},
		{"traversal topic", "/handlers/email", `{"topic":"../etc"}`, &stubRepo{}, http.StatusBadRequest, "BAD_REQUEST"},
		{"storage error", "/handlers/email", `{"topic":"a"}`, &stubRepo{err: errors.New("locked")}, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(newMux(tt.repo), http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.kind, errorType(t, rr))
		})
	}
}

/* ───────── PUT /handlers/{type}/{topic} ───────── */

func TestUpdateHandler_TopicFromPath(t *testing.T) {
	repo := &stubRepo{}
	mux := newMux(repo)

	rr := serve(mux, http.MethodPut, "/handlers/email/TS", `{"topic":"ignored","settings":{"server":"a"}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = serve(mux, http.MethodPut, "/handlers/email/ts", `{"settings":{"server":"b"}}`)
	require.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, "b", repo.rows["ts"].Settings["server"])
}

/* ───────── GET /handlers/{type}[/{topic}] ───────── */

func TestGetHandler(t *testing.T) {
	repo := &stubRepo{rows: map[string]*entity.Handler{
		"alerts": {Topic: "alerts", Type: entity.HandlerTypeEmail, Settings: entity.Settings{"server": "a"}},
	}}
	mux := newMux(repo)

	rr := serve(mux, http.MethodGet, "/handlers/email/ALERTS", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"topic":"alerts","settings":{"server":"a"}}`, rr.Body.String())

	rr = serve(mux, http.MethodGet, "/handlers/email/missing", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{}`, rr.Body.String())
}

func TestListHandler(t *testing.T) {
	repo := &stubRepo{rows: map[string]*entity.Handler{
		"b": {Topic: "b", Type: entity.HandlerTypeEmail},
		"a": {Topic: "a", Type: entity.HandlerTypeEmail, Settings: entity.Settings{"server": "x"}},
	}}
	rr := serve(newMux(repo), http.MethodGet, "/handlers/email", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"topic":"a","settings":{"server":"x"}},{"topic":"b","settings":null}]`, rr.Body.String())
}

func TestListHandler_Empty(t *testing.T) {
	rr := serve(newMux(&stubRepo{}), http.MethodGet, "/handlers/email", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestListHandler_UnknownType(t *testing.T) {
	rr := serve(newMux(&stubRepo{}), http.MethodGet, "/handlers/sms", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
