package bots

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, gen *mockGenerator) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, NewChatHandler(newTestGateway(t, gen)))
	return r
}

func postEvent(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func replyText(t *testing.T, resp map[string]any) string {
	t.Helper()
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	var reply Reply
	require.NoError(t, json.Unmarshal(data, &reply))
	require.False(t, reply.IsEmpty(), "expected a message reply, got %s", data)
	return reply.Text()
}

func TestChatHandlerMessage(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "hello").Return("Hi from the model", nil).Once()

	w, resp := postEvent(t, newTestRouter(t, gen), `{"chat":{"messagePayload":{"message":{"text":"hello"}}}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "Hi from the model", replyText(t, resp))
	gen.AssertExpectations(t)
}

func TestChatHandlerAddedToSpace(t *testing.T) {
	gen := &mockGenerator{}
	w, resp := postEvent(t, newTestRouter(t, gen), `{"chat":{"addedToSpacePayload":{}}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestChatHandlerAlwaysOK(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{"chat":`, ErrorText},
		{"not an object", `[1,2,3]`, ErrorText},
		{"empty body", ``, ErrorText},
		{"empty message", `{"chat":{"messagePayload":{"message":{"text":""}}}}`, EmptyMessageText},
		{"generation failure", `{"chat":{"messagePayload":{"message":{"text":"fail"}}}}`, ErrorText},
		{"oversized body", `{"chat":{"messagePayload":{"message":{"text":"` + strings.Repeat("a", maxEventBytes) + `"}}}}`, ErrorText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{}
			gen.On("Generate", mock.Anything, "fail").Return("", errors.New("upstream unavailable")).Maybe()

			w, resp := postEvent(t, newTestRouter(t, gen), tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, replyText(t, resp))
		})
	}
}

func TestChatHandlerQuickCommand(t *testing.T) {
	gen := &mockGenerator{}
	_, resp := postEvent(t, newTestRouter(t, gen), `{"chat":{"appCommandPayload":{"appCommandMetadata":{"appCommandId":1,"appCommandType":"QUICK_COMMAND"}}}}`)

	assert.Equal(t, "Hello! I am the team assistant.", replyText(t, resp))
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestChatHandlerRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	newTestRouter(t, &mockGenerator{}).ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
