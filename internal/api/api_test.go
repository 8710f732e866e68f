package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eytgaming/eytgaming/internal/api"
	"github.com/eytgaming/eytgaming/internal/api/response"
	"github.com/eytgaming/eytgaming/internal/factory"
	"github.com/eytgaming/eytgaming/internal/services/account"
	"github.com/eytgaming/eytgaming/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	account *account.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AccountService:     app.AccountService,
		GameProfileService: app.GameProfileService,
		PaymentService:     app.PaymentService,
		TeamService:        app.TeamService,
		BundleService:      app.BundleService,
		VisibilityGate:     app.VisibilityGate,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		account: app.AccountService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// register creates an account and returns the auth response
func (ts *testServer) register(t *testing.T, username string) response.AuthResponse {
	t.Helper()

	body := map[string]string{
		"username":     username,
		"password":     "secret123",
		"display_name": username,
	}
	rr := ts.request(http.MethodPost, "/api/v1/accounts/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerResp := ts.register(t, "alice")
	assert.Equal(t, "alice", registerResp.User.Username)
	assert.NotEmpty(t, registerResp.SessionToken)

	loginBody := map[string]string{
		"username": "alice",
		"password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/accounts/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	assert.Equal(t, registerResp.User.ID, loginResp.User.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	ts.register(t, "alice")

	body := map[string]string{
		"username":     "alice",
		"password":     "different456",
		"display_name": "Other Alice",
	}
	rr := ts.request(http.MethodPost, "/api/v1/accounts/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "USERNAME_EXISTS")
}

func TestProtectedRouteRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/profiles", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/profiles", nil, "bogus-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGameProfileMainFlow(t *testing.T) {
	ts := newTestServer(t)
	auth := ts.register(t, "alice")

	// First profile created as main
	rr := ts.request(http.MethodPost, "/api/v1/profiles", map[string]any{
		"game":         "StarCraft II",
		"in_game_name": "aliceZerg",
		"skill_rating": 3200,
		"as_main":      true,
	}, auth.SessionToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var first response.GameProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &first))
	assert.True(t, first.IsMain)

	// Second profile created as main demotes the first
	rr = ts.request(http.MethodPost, "/api/v1/profiles", map[string]any{
		"game":         "League of Legends",
		"in_game_name": "aliceMid",
		"skill_rating": 1850,
		"as_main":      true,
	}, auth.SessionToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var second response.GameProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &second))
	assert.True(t, second.IsMain)

	rr = ts.request(http.MethodGet, "/api/v1/profiles/main", nil, auth.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var main response.GameProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &main))
	assert.Equal(t, second.ID, main.ID)

	// Switch main back to the first profile
	rr = ts.request(http.MethodPut, "/api/v1/profiles/"+first.ID+"/main", nil, auth.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	// List shows the main profile first despite its rating
	rr = ts.request(http.MethodGet, "/api/v1/profiles", nil, auth.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []response.GameProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.True(t, list[0].IsMain)
	assert.False(t, list[1].IsMain)

	// Deleting the main leaves no main at all
	rr = ts.request(http.MethodDelete, "/api/v1/profiles/"+first.ID, nil, auth.SessionToken)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/profiles/main", nil, auth.SessionToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGameProfileOwnerIsolation(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	rr := ts.request(http.MethodPost, "/api/v1/profiles", map[string]any{
		"game":         "Dota 2",
		"in_game_name": "al1ce",
		"skill_rating": 4000,
	}, alice.SessionToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var profile response.GameProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profile))

	// Bob cannot see or promote Alice's profile
	rr = ts.request(http.MethodGet, "/api/v1/profiles/"+profile.ID, nil, bob.SessionToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodPut, "/api/v1/profiles/"+profile.ID+"/main", nil, bob.SessionToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPaymentMethodDefaultFlow(t *testing.T) {
	ts := newTestServer(t)
	auth := ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/payment-methods", map[string]any{
		"kind":       "card",
		"label":      "Visa ending 4242",
		"as_default": true,
	}, auth.SessionToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var visa response.PaymentMethod
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &visa))
	assert.True(t, visa.IsDefault)

	rr = ts.request(http.MethodPost, "/api/v1/payment-methods", map[string]any{
		"kind":  "paypal",
		"label": "alice@example.com",
	}, auth.SessionToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var paypal response.PaymentMethod
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &paypal))
	assert.False(t, paypal.IsDefault)

	// A deactivated method cannot become the default
	rr = ts.request(http.MethodPost, "/api/v1/payment-methods/"+paypal.ID+"/deactivate", nil, auth.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPut, "/api/v1/payment-methods/"+paypal.ID+"/default", nil, auth.SessionToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "PAYMENT_METHOD_INACTIVE")

	// The old default is untouched by the failed switch
	rr = ts.request(http.MethodGet, "/api/v1/payment-methods/default", nil, auth.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var def response.PaymentMethod
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &def))
	assert.Equal(t, visa.ID, def.ID)

	// Reactivating makes it eligible again
	rr = ts.request(http.MethodPost, "/api/v1/payment-methods/"+paypal.ID+"/reactivate", nil, auth.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPut, "/api/v1/payment-methods/"+paypal.ID+"/default", nil, auth.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/payment-methods/default", nil, auth.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &def))
	assert.Equal(t, paypal.ID, def.ID)
}

func TestTeamJoinByCode(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	rr := ts.request(http.MethodPost, "/api/v1/teams", map[string]string{
		"name": "Night Owls",
		"tag":  "OWL",
	}, alice.SessionToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created response.Team
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotEmpty(t, created.JoinCode)

	rr = ts.request(http.MethodPost, "/api/v1/teams/join", map[string]string{
		"join_code": created.JoinCode,
	}, bob.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var joined response.Team
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	assert.Equal(t, created.ID, joined.ID)
	assert.Len(t, joined.Members, 2)

	// Joining twice conflicts
	rr = ts.request(http.MethodPost, "/api/v1/teams/join", map[string]string{
		"join_code": created.JoinCode,
	}, bob.SessionToken)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// A bad code is indistinguishable from no team
	rr = ts.request(http.MethodPost, "/api/v1/teams/join", map[string]string{
		"join_code": "NOPE99",
	}, bob.SessionToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Mutual teams between alice and bob
	rr = ts.request(http.MethodGet, "/api/v1/teams/mutual/"+bob.User.ID, nil, alice.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var mutual []response.Team
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &mutual))
	require.Len(t, mutual, 1)
	assert.Equal(t, created.ID, mutual[0].ID)
}

func TestPublicProfileSectionVisibility(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	// Alice records a match so there is something to hide
	rr := ts.request(http.MethodPost, "/api/v1/accounts/me/matches", map[string]bool{"won": true}, alice.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	// Bob's view: no flags set, so no conditional sections. The keys must
	// be entirely absent from the JSON, not null.
	rr = ts.request(http.MethodGet, "/api/v1/users/"+alice.User.ID, nil, bob.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Contains(t, raw, "user_id")
	assert.Contains(t, raw, "achievements")
	assert.Contains(t, raw, "teams")
	assert.NotContains(t, raw, "statistics")
	assert.NotContains(t, raw, "activity_feed")
	assert.NotContains(t, raw, "is_online")

	// Alice enables statistics sharing
	rr = ts.request(http.MethodPut, "/api/v1/accounts/me/privacy", map[string]bool{
		"show_statistics": true,
	}, alice.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/users/"+alice.User.ID, nil, bob.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	raw = nil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Contains(t, raw, "statistics")
	assert.NotContains(t, raw, "activity_feed")

	// Anonymous viewers benefit from the same flag
	rr = ts.request(http.MethodGet, "/api/v1/users/"+alice.User.ID, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	raw = nil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Contains(t, raw, "statistics")
	assert.NotContains(t, raw, "activity_feed")

	// Alice always sees every section of her own profile
	rr = ts.request(http.MethodGet, "/api/v1/users/"+alice.User.ID, nil, alice.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	raw = nil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Contains(t, raw, "statistics")
	assert.Contains(t, raw, "activity_feed")
	assert.Contains(t, raw, "is_online")
}

func TestPrivateProfileGating(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	rr := ts.request(http.MethodPut, "/api/v1/accounts/me/privacy", map[string]bool{
		"private_profile": true,
	}, alice.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	// The full-profile view is closed to everyone but alice
	rr = ts.request(http.MethodGet, "/api/v1/users/"+alice.User.ID+"/profile", nil, bob.SessionToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/users/"+alice.User.ID+"/profile", nil, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/users/"+alice.User.ID+"/profile", nil, alice.SessionToken)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAnonymousNeverGetsFullProfile(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")

	// Even a fully public profile refuses the full view to anonymous viewers
	rr := ts.request(http.MethodGet, "/api/v1/users/"+alice.User.ID+"/profile", nil, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestPrivacyUpdateRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	auth := ts.register(t, "alice")

	rr := ts.request(http.MethodPut, "/api/v1/accounts/me/privacy", map[string]bool{
		"show_statistics":    true,
		"show_online_status": true,
	}, auth.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/accounts/me", nil, auth.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var me response.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.True(t, me.Privacy.ShowStatistics)
	assert.False(t, me.Privacy.ShowActivity)
	assert.True(t, me.Privacy.ShowOnlineStatus)
	assert.False(t, me.Privacy.PrivateProfile)
}

func TestUnknownUserIs404(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/users/u_does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "USER_NOT_FOUND")
}

func TestLogoutInvalidatesSession(t *testing.T) {
	ts := newTestServer(t)
	auth := ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/accounts/logout", nil, auth.SessionToken)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/accounts/me", nil, auth.SessionToken)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
