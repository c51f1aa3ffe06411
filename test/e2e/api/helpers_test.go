package api_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testImageName = "healthmate-api-test:latest"

	seedAdminEmail    = "admin@healthmate.dev"
	seedAdminPassword = "Admin@123"
	seedUserEmail     = "lan@example.com"
	seedUserPassword  = "Health@123"
)

// TestMain builds the image once for every test in the package.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building HealthMate API Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up HealthMate API Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/healthmate-api/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupAPIContainer starts healthmate-api with relaxed rate limits and
// returns its base URL.
func setupAPIContainer(t *testing.T, extraEnv map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"ENV":        "test",
		"LOG_LEVEL":  "info",
		"LOG_FORMAT": "json",
		// Tests make many rapid requests which would trip the production limits.
		"HEALTHMATE_RATELIMIT_CREDENTIAL": "1000/1m",
		"HEALTHMATE_RATELIMIT_WRITE":      "1000/1m",
		"HEALTHMATE_RATELIMIT_READ":       "1000/1m",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"5000/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("5000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "5000")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// loginAs returns a client holding a fresh token for the account.
func loginAs(t *testing.T, baseURL, email, password string) (*healthsdk.Client, healthsdk.User) {
	t.Helper()

	c := healthsdk.NewClient(baseURL, 10*time.Second)
	auth, res := c.Login(t.Context(), healthsdk.LoginRequest{Email: email, Password: password})
	requireOK(t, res)
	require.NotEmpty(t, auth.Token)

	c.SetToken(auth.Token)
	return c, auth.User
}

func requireOK(t *testing.T, res healthsdk.Result) {
	t.Helper()
	require.True(t, res.OK, "request failed: status=%d error=%q", res.Status, res.Error)
}

func requireFailed(t *testing.T, res healthsdk.Result, status int) {
	t.Helper()
	require.False(t, res.OK)
	require.Equal(t, status, res.Status, res.Error)
	require.NotEmpty(t, res.Error)
}
