package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"chatcore-backend/internal/hub"
	"chatcore-backend/internal/models"
	"chatcore-backend/internal/snowflake"
	"chatcore-backend/internal/store"
	"chatcore-backend/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	token.Setup("test-secret")
	sugar = zap.NewNop().Sugar()
	st = store.New(sugar)

	ids, err := snowflake.New(0)
	require.NoError(t, err)
	ws = hub.New(sugar, ids)

	srv := httptest.NewServer(router(false))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return srv, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func register(t *testing.T, client *http.Client, baseURL, email, nameFirst, nameLast string) models.User {
	t.Helper()

	resp := postJSON(t, client, baseURL+"/api/auth/register", map[string]string{
		"email":     email,
		"password":  "password",
		"nameFirst": nameFirst,
		"nameLast":  nameLast,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeJSON[models.User](t, resp)
}

func TestRegisterLoginLogout(t *testing.T) {
	srv, client := newTestServer(t)

	user := register(t, client, srv.URL, "steven@gmail.com", "Steven", "Nguyen")
	assert.Equal(t, int64(0), user.ID)
	assert.Equal(t, "stevennguyen", user.Handle)

	// the register response sets the session cookie
	resp, err := client.Get(srv.URL + "/api/user/fetch?userID=self")
	require.NoError(t, err)
	fetched := decodeJSON[models.User](t, resp)
	assert.Equal(t, "steven@gmail.com", fetched.Email)

	resp = postJSON(t, client, srv.URL+"/api/auth/logout", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/api/user/fetch?userID=self")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// logging back in revives the session
	resp = postJSON(t, client, srv.URL+"/api/auth/login", map[string]string{
		"email":    "steven@gmail.com",
		"password": "password",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/api/user/fetch?userID=self")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	srv, client := newTestServer(t)

	resp := postJSON(t, client, srv.URL+"/api/auth/register", map[string]string{
		"email":     "steven@gmail.com",
		"password":  "123",
		"nameFirst": "Steven",
		"nameLast":  "Nguyen",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	register(t, client, srv.URL, "steven@gmail.com", "Steven", "Nguyen")

	resp = postJSON(t, client, srv.URL+"/api/auth/register", map[string]string{
		"email":     "steven@gmail.com",
		"password":  "password",
		"nameFirst": "Other",
		"nameLast":  "Steven",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnauthenticated(t *testing.T) {
	srv, client := newTestServer(t)

	resp, err := client.Get(srv.URL + "/api/user/fetch?userID=self")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChannelAndMessageFlow(t *testing.T) {
	srv, client := newTestServer(t)

	register(t, client, srv.URL, "steven@gmail.com", "Steven", "Nguyen")

	resp := postJSON(t, client, srv.URL+"/api/channel/create", map[string]any{
		"name":     "general",
		"isPublic": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	channel := decodeJSON[models.Channel](t, resp)
	assert.Equal(t, int64(0), channel.ID)

	resp = postJSON(t, client, srv.URL+"/api/message/create", map[string]any{
		"channelID": channel.ID,
		"body":      "hello world",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg := decodeJSON[models.Message](t, resp)
	assert.Equal(t, int64(0), msg.ID)

	resp, err := client.Get(srv.URL + "/api/message/fetch?channelID=0")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	messages := decodeJSON[[]models.Message](t, resp)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello world", messages[0].Body)

	resp = postJSON(t, client, srv.URL+"/api/message/react", map[string]any{
		"messageID": msg.ID,
		"reactID":   1,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, client, srv.URL+"/api/message/unreact", map[string]any{
		"messageID": msg.ID,
		"reactID":   2,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMessageRequiresMembership(t *testing.T) {
	srv, client := newTestServer(t)

	register(t, client, srv.URL, "steven@gmail.com", "Steven", "Nguyen")
	resp := postJSON(t, client, srv.URL+"/api/channel/create", map[string]any{
		"name":     "private",
		"isPublic": false,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// a second account with its own cookie jar
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	outsider := &http.Client{Jar: jar}
	register(t, outsider, srv.URL, "bill@gmail.com", "Bill", "Nye")

	resp = postJSON(t, outsider, srv.URL+"/api/message/create", map[string]any{
		"channelID": 0,
		"body":      "let me in",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// standup status is gated on membership like every other channel read
	statusResp, err := outsider.Get(srv.URL + "/api/standup/active?channelID=0")
	require.NoError(t, err)
	statusResp.Body.Close()
	assert.Equal(t, http.StatusForbidden, statusResp.StatusCode)
}

func TestStandupEndpoints(t *testing.T) {
	srv, client := newTestServer(t)

	register(t, client, srv.URL, "steven@gmail.com", "Steven", "Nguyen")
	resp := postJSON(t, client, srv.URL+"/api/channel/create", map[string]any{
		"name":     "general",
		"isPublic": true,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, client, srv.URL+"/api/standup/start", map[string]any{
		"channelID": 0,
		"length":    3600,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	started := decodeJSON[map[string]int64](t, resp)
	assert.Positive(t, started["timeFinish"])

	resp = postJSON(t, client, srv.URL+"/api/standup/start", map[string]any{
		"channelID": 0,
		"length":    3600,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = postJSON(t, client, srv.URL+"/api/standup/send", map[string]any{
		"channelID": 0,
		"body":      "working on the report",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := client.Get(srv.URL + "/api/standup/active?channelID=0")
	require.NoError(t, err)
	status := decodeJSON[map[string]any](t, resp)
	assert.Equal(t, true, status["isActive"])

	// queued submissions are invisible until the window closes
	resp, err = client.Get(srv.URL + "/api/message/fetch?channelID=0")
	require.NoError(t, err)
	messages := decodeJSON[[]models.Message](t, resp)
	assert.Empty(t, messages)
}
