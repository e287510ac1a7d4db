package cli

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORE_BACKEND", "memory")
	return execute(t, args...)
}

// runCLIWithRedis points the store at a miniredis instance the caller can
// inspect afterwards.
func runCLIWithRedis(t *testing.T, args ...string) (*miniredis.Miniredis, string, error) {
	t.Helper()
	mini := miniredis.RunT(t)
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", mini.Addr())
	out, err := execute(t, args...)
	return mini, out, err
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_SECRET", "")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateUser(t *testing.T) {
	out, err := runCLI(t, "create-user",
		"--first-name", "Ada", "--last-name", "Lovelace",
		"--email", "a@b.com", "--phone", "1234567890", "--password", "Secret123")
	require.NoError(t, err)

	assert.Contains(t, out, "(a@b.com) role=user handle=ada-lovelace")
	assert.NotContains(t, out, "Secret123")
}

func TestCreateAdminWithToken(t *testing.T) {
	out, err := runCLI(t, "create-user",
		"--email", "root@b.com", "--phone", "1234567890", "--password", "Secret123",
		"--role", "admin", "--issue-token")
	require.NoError(t, err)

	assert.Contains(t, out, "role=admin")
	var token string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "token: ") {
			token = strings.TrimPrefix(line, "token: ")
		}
	}
	assert.Equal(t, 2, strings.Count(token, "."))
}

func TestCreateUserTokenRequiresAdmin(t *testing.T) {
	mini, out, err := runCLIWithRedis(t, "create-user",
		"--email", "a@b.com", "--phone", "1234567890", "--password", "Secret123", "--issue-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--issue-token requires --role=admin")

	assert.NotContains(t, out, "created user")
	assert.False(t, mini.Exists("signup:idx:email:a@b.com"))
	assert.Empty(t, mini.Keys())
}

func TestCreateUserWithRedis(t *testing.T) {
	mini, out, err := runCLIWithRedis(t, "create-user",
		"--email", "a@b.com", "--phone", "1234567890", "--password", "Secret123")
	require.NoError(t, err)

	assert.Contains(t, out, "(a@b.com) role=user")
	assert.True(t, mini.Exists("signup:idx:email:a@b.com"))
}

func TestRequestTimeoutExpiresBeforeWriteTimeout(t *testing.T) {
	server := newHTTPServer(":0", http.NotFoundHandler())

	assert.Positive(t, requestTimeout)
	assert.Less(t, requestTimeout, server.WriteTimeout)
}

func TestCreateUserReportsOutcome(t *testing.T) {
	_, err := runCLI(t, "create-user", "--email", "not-an-email", "--phone", "1234567890", "--password", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidEmail")

	_, err = runCLI(t, "create-user", "--email", "a@b.com", "--phone", "1234567890", "--password", "x", "--role", "root")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidRole")
}

func TestCreateUserRequiresFlags(t *testing.T) {
	_, err := runCLI(t, "create-user", "--email", "a@b.com")
	assert.Error(t, err)
}
