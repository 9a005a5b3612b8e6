package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazabarbershop/baza/backend/internal/model/catalog"
	modelchat "github.com/bazabarbershop/baza/backend/internal/model/chat"
	"github.com/bazabarbershop/baza/backend/internal/model/knowledge"
	chatservice "github.com/bazabarbershop/baza/backend/internal/service/chat"
)

type stubResponder struct {
	reply string
	err   error
}

func (s stubResponder) Reply(context.Context, string, string) (string, error) {
	return s.reply, s.err
}

func setupRouter(responder chatservice.TextResponder) (*chi.Mux, *chatservice.Service) {
	chatSvc := chatservice.NewService(chatservice.Config{Greeting: catalog.Greeting})
	resolver := chatservice.NewResolver(knowledge.Default(), responder, chatservice.ResolverConfig{
		SiteContext: catalog.DefaultSite().Context,
	}, nil)

	r := chi.NewRouter()
	New(chatSvc, resolver).RegisterRoutes(r)
	return r, chatSvc
}

func do(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func createSession(t *testing.T, r http.Handler) chatservice.Snapshot {
	t.Helper()
	resp := do(r, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	var snap chatservice.Snapshot
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &snap))
	return snap
}

func TestCreateSessionSeedsGreeting(t *testing.T) {
	r, _ := setupRouter(nil)
	snap := createSession(t, r)

	assert.NotEmpty(t, snap.Session.ID)
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, modelchat.RoleAssistant, snap.Messages[0].Role)
	assert.Equal(t, catalog.Greeting, snap.Messages[0].Text)
	assert.False(t, snap.Busy)
}

func TestSendMessageLocalMatch(t *testing.T) {
	r, _ := setupRouter(nil)
	snap := createSession(t, r)

	resp := do(r, http.MethodPost, "/sessions/"+snap.Session.ID+"/messages", []byte(`{"text":"у вас есть парковка?"}`))
	require.Equal(t, http.StatusOK, resp.Code)

	var turn TurnResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &turn))
	assert.Equal(t, chatservice.OutcomeLocalMatch, turn.Outcome.Kind)
	require.Len(t, turn.State.Messages, 3)
	assert.Equal(t, turn.Outcome.Reply, turn.State.Messages[2].Text)
	assert.False(t, turn.State.Busy)
}

func TestSendMessageRemoteFailureUsesPhoneFallback(t *testing.T) {
	r, _ := setupRouter(stubResponder{err: errors.New("down")})
	snap := createSession(t, r)

	resp := do(r, http.MethodPost, "/sessions/"+snap.Session.ID+"/messages", []byte(`{"text":"какая погода завтра"}`))
	require.Equal(t, http.StatusOK, resp.Code)

	var turn TurnResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &turn))
	assert.Equal(t, chatservice.ReasonTransport, turn.Outcome.Reason)
	assert.Equal(t, catalog.FallbackUnavailable, turn.State.Messages[2].Text)
}

func TestSendBlankMessageIsSkipped(t *testing.T) {
	r, _ := setupRouter(nil)
	snap := createSession(t, r)

	resp := do(r, http.MethodPost, "/sessions/"+snap.Session.ID+"/messages", []byte(`{"text":"   "}`))
	require.Equal(t, http.StatusOK, resp.Code)

	var turn TurnResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &turn))
	assert.Equal(t, chatservice.OutcomeSkipped, turn.Outcome.Kind)
	assert.Len(t, turn.State.Messages, 1)
}

func TestListMessages(t *testing.T) {
	r, _ := setupRouter(nil)
	snap := createSession(t, r)

	do(r, http.MethodPost, "/sessions/"+snap.Session.ID+"/messages", []byte(`{"text":"где парковка"}`))

	resp := do(r, http.MethodGet, "/sessions/"+snap.Session.ID+"/messages", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var messages []modelchat.Message
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &messages))
	require.Len(t, messages, 3)
	assert.Equal(t, modelchat.RoleUser, messages[1].Role)
	assert.Equal(t, "где парковка", messages[1].Text)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/sessions/missing/messages", nil).Code)
}

func TestSendMessageInvalidBody(t *testing.T) {
	r, _ := setupRouter(nil)
	snap := createSession(t, r)

	resp := do(r, http.MethodPost, "/sessions/"+snap.Session.ID+"/messages", []byte(`{`))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSessionNotFound(t *testing.T) {
	r, _ := setupRouter(nil)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/sessions/missing", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/sessions/missing/messages", []byte(`{"text":"hi"}`)).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/sessions/missing", nil).Code)
}

func TestEndSession(t *testing.T) {
	r, svc := setupRouter(nil)
	snap := createSession(t, r)

	resp := do(r, http.MethodDelete, "/sessions/"+snap.Session.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, 0, svc.Len())
}
