package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eytgaming/eytgaming/internal/api"
	"github.com/eytgaming/eytgaming/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "eytctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/eytctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AccountService:     app.AccountService,
		GameProfileService: app.GameProfileService,
		PaymentService:     app.PaymentService,
		TeamService:        app.TeamService,
		BundleService:      app.BundleService,
		VisibilityGate:     app.VisibilityGate,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	User struct {
		ID          string `json:"id"`
		Username    string `json:"username"`
		DisplayName string `json:"display_name"`
	} `json:"user"`
	SessionToken string `json:"session_token"`
}

type profileResponse struct {
	ID          string `json:"id"`
	Game        string `json:"game"`
	InGameName  string `json:"in_game_name"`
	SkillRating int    `json:"skill_rating"`
	IsMain      bool   `json:"is_main"`
}

type teamResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Tag      string   `json:"tag"`
	JoinCode string   `json:"join_code"`
	Members  []string `json:"members"`
}

type profileViewResponse struct {
	UserID       string          `json:"user_id"`
	Username     string          `json:"username"`
	DisplayName  string          `json:"display_name"`
	Statistics   json.RawMessage `json:"statistics"`
	ActivityFeed json.RawMessage `json:"activity_feed"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AccountCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("account", "register", "--name", "Alice", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "alice", authResp.User.Username)
	assert.NotEmpty(t, authResp.SessionToken)

	// Me (token saved in token file)
	output, err = cli.run("account", "me")
	require.NoError(t, err, "output: %s", output)

	var me struct {
		User struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, authResp.User.ID, me.User.ID)
}

func TestCLI_ProfileFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("account", "register", "--name", "Alice", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	// Create a profile, then a second one as main
	output, err = cli.run("profile", "create", "--game", "StarCraft II", "--name", "aliceZerg", "--rating", "3200")
	require.NoError(t, err, "output: %s", output)
	var first profileResponse
	require.NoError(t, json.Unmarshal([]byte(output), &first))
	assert.False(t, first.IsMain)

	output, err = cli.run("profile", "create", "--game", "League of Legends", "--name", "aliceMid", "--rating", "1850", "--main")
	require.NoError(t, err, "output: %s", output)
	var second profileResponse
	require.NoError(t, json.Unmarshal([]byte(output), &second))
	assert.True(t, second.IsMain)

	// Main shows the second profile
	output, err = cli.run("profile", "main")
	require.NoError(t, err, "output: %s", output)
	var main profileResponse
	require.NoError(t, json.Unmarshal([]byte(output), &main))
	assert.Equal(t, second.ID, main.ID)

	// Switch main to the first profile
	output, err = cli.run("profile", "set-main", first.ID)
	require.NoError(t, err, "output: %s", output)

	// List shows the new main first
	output, err = cli.run("profile", "list")
	require.NoError(t, err, "output: %s", output)
	var list []profileResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.True(t, list[0].IsMain)

	// Delete the main; no main remains
	output, err = cli.run("profile", "delete", first.ID)
	require.NoError(t, err, "output: %s", output)
	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Contains(t, msgResp.Message, "Deleted profile")

	output, err = cli.run("profile", "main")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}

func TestCLI_TeamFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	// Two CLI runners with separate token files
	alice := newCLIRunner(t, ts.addr)
	bob := &cliRunner{
		binaryPath: alice.binaryPath,
		serverURL:  alice.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	output, err := alice.run("account", "register", "--name", "Alice", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	output, err = bob.run("account", "register", "--name", "Bob", "--user", "bob", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)
	var bobAuth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bobAuth))

	// Alice creates a team
	output, err = alice.run("team", "create", "--name", "Night Owls", "--tag", "OWL")
	require.NoError(t, err, "output: %s", output)
	var created teamResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	require.NotEmpty(t, created.JoinCode)

	// Bob joins by code
	output, err = bob.run("team", "join", created.JoinCode)
	require.NoError(t, err, "output: %s", output)
	var joined teamResponse
	require.NoError(t, json.Unmarshal([]byte(output), &joined))
	assert.Equal(t, created.ID, joined.ID)
	assert.Len(t, joined.Members, 2)

	// Mutual teams between alice and bob
	output, err = alice.run("team", "mutual", bobAuth.User.ID)
	require.NoError(t, err, "output: %s", output)
	var mutual []teamResponse
	require.NoError(t, json.Unmarshal([]byte(output), &mutual))
	require.Len(t, mutual, 1)
	assert.Equal(t, created.ID, mutual[0].ID)

	// Bob leaves
	output, err = bob.run("team", "leave", created.ID)
	require.NoError(t, err, "output: %s", output)
	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Contains(t, msgResp.Message, "Left team")
}

func TestCLI_ProfileVisibility(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	alice := newCLIRunner(t, ts.addr)
	bob := &cliRunner{
		binaryPath: alice.binaryPath,
		serverURL:  alice.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	output, err := alice.run("account", "register", "--name", "Alice", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)
	var aliceAuth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &aliceAuth))

	output, err = bob.run("account", "register", "--name", "Bob", "--user", "bob", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	// Alice records a match
	output, err = alice.run("account", "match", "--won")
	require.NoError(t, err, "output: %s", output)

	// Bob views alice: no statistics shared yet
	output, err = bob.run("user", "view", aliceAuth.User.ID)
	require.NoError(t, err, "output: %s", output)
	var view profileViewResponse
	require.NoError(t, json.Unmarshal([]byte(output), &view))
	assert.Equal(t, "alice", view.Username)
	assert.Nil(t, view.Statistics)

	// Alice opts in to statistics sharing
	output, err = alice.run("account", "privacy", "--show-statistics")
	require.NoError(t, err, "output: %s", output)

	// Bob now sees the statistics section
	output, err = bob.run("user", "view", aliceAuth.User.ID)
	require.NoError(t, err, "output: %s", output)
	view = profileViewResponse{}
	require.NoError(t, json.Unmarshal([]byte(output), &view))
	assert.NotNil(t, view.Statistics)
	assert.Nil(t, view.ActivityFeed)

	// Alice goes fully private; bob loses the full-profile view
	output, err = alice.run("account", "privacy", "--private")
	require.NoError(t, err, "output: %s", output)

	output, err = bob.run("user", "profile", aliceAuth.User.ID)
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not visible")
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Me without auth
	output, err := cli.run("account", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication required")

	// Unknown user
	output, err = cli.run("account", "register", "--name", "Alice", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("user", "view", "u_does-not-exist")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
