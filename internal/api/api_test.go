package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sparkchat/sparkd/internal/auth"
	"github.com/sparkchat/sparkd/internal/config"
	"github.com/sparkchat/sparkd/internal/database"
	"github.com/sparkchat/sparkd/internal/message"
	"github.com/sparkchat/sparkd/internal/server"
	"github.com/sparkchat/sparkd/internal/stats"
	"github.com/sparkchat/sparkd/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	db := database.NewMemoryRepository()
	logger := testutil.TestLogger(t)

	st := &stats.MockStatsUpdater{}
	st.On("Incr", mock.Anything).Maybe()
	st.On("Decr", mock.Anything).Maybe()

	authSvc := auth.NewService(logger, db)
	msgSvc := message.NewService(logger, db)
	cs := server.NewChatServer(logger, authSvc, msgSvc, st)

	cfg, err := config.NewConfig(":0", "postgres://test", "")
	require.NoError(t, err)

	s := NewServer(logger, authSvc, cs, cfg, http.NewServeMux())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJson(t *testing.T, url string, body any) (*http.Response, Response) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func decodeData(t *testing.T, resp Response, v any) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestRegisterEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJson(t, ts.URL+"/api/auth/register", RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, statusSuccess, body.Status)

	var session SessionData
	decodeData(t, body, &session)
	assert.Equal(t, "alice", session.User.Username)
	assert.NotEmpty(t, session.Token)

	// duplicate username
	resp, body = postJson(t, ts.URL+"/api/auth/register", RegisterRequest{
		Username: "alice", Email: "alice2@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, statusError, body.Status)
	assert.Equal(t, "user already exists", body.Message)

	// validation failure
	resp, body = postJson(t, ts.URL+"/api/auth/register", RegisterRequest{
		Username: "al", Email: "al@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, statusError, body.Status)
}

func TestLoginEndpoint(t *testing.T) {
	ts := newTestServer(t)

	_, _ = postJson(t, ts.URL+"/api/auth/register", RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	})

	resp, body := postJson(t, ts.URL+"/api/auth/login", LoginRequest{
		Username: "alice", Password: "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, statusSuccess, body.Status)

	var session SessionData
	decodeData(t, body, &session)
	assert.NotEmpty(t, session.Token)

	resp, body = postJson(t, ts.URL+"/api/auth/login", LoginRequest{
		Username: "alice", Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid credentials", body.Message)
}

func TestValidateAndLogoutEndpoints(t *testing.T) {
	ts := newTestServer(t)

	_, registered := postJson(t, ts.URL+"/api/auth/register", RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	})
	var session SessionData
	decodeData(t, registered, &session)

	resp, body := postJson(t, ts.URL+"/api/auth/validate", TokenRequest{Token: session.Token})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, statusSuccess, body.Status)

	resp, body = postJson(t, ts.URL+"/api/auth/logout", TokenRequest{Token: session.Token})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, statusSuccess, body.Status)

	resp, body = postJson(t, ts.URL+"/api/auth/validate", TokenRequest{Token: session.Token})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, statusError, body.Status)
}

func TestBadRequestBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/auth/register", "application/json", strings.NewReader("{{{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebsocketAuthentication(t *testing.T) {
	ts := newTestServer(t)

	_, registered := postJson(t, ts.URL+"/api/auth/register", RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	})
	var session SessionData
	decodeData(t, registered, &session)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{
		"type":  "Authenticate",
		"token": session.Token,
	}))

	var event struct {
		Type string `json:"type"`
		User struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "Authenticated", event.Type)
	assert.Equal(t, "alice", event.User.Username)
}
