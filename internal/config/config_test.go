package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twctl/twctl/internal/apperrors"
)

// isolate points HOME and the working directory at empty temp dirs and clears
// the credential variables so the developer's own setup cannot leak in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")
	t.Setenv("LOG_LEVEL", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 200, cfg.ListLimit)
	assert.Equal(t, 20*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, DefaultTrustHubURL, cfg.API.TrustHubURL)
	assert.Equal(t, DefaultMessagingURL, cfg.API.MessagingURL)
	assert.Equal(t, DefaultCoreURL, cfg.API.CoreURL)
}

func TestLoadFromYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	content := `
logLevel: debug
listLimit: 50
twilio:
  accountSID: AC_from_file
  authToken: token_from_file
http:
  timeout: 5s
api:
  trusthubURL: http://localhost:9999
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.ListLimit)
	assert.Equal(t, "AC_from_file", cfg.Twilio.AccountSID)
	assert.Equal(t, "token_from_file", cfg.Twilio.AuthToken)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "http://localhost:9999", cfg.API.TrustHubURL)
	assert.NoError(t, cfg.RequireCredentials())
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "twctl.yaml"), []byte("listLimit: 7\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.ListLimit)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "twctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("twilio:\n  accountSID: AC_file\n"), 0o644))

	t.Setenv("TWILIO_ACCOUNT_SID", "AC_env")
	t.Setenv("TWCTL_HTTP_TIMEOUT", "3s")
	t.Setenv("TWCTL_API_COREURL", "http://core.local")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "AC_env", cfg.Twilio.AccountSID)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "http://core.local", cfg.API.CoreURL)
}

func TestDotEnvFile(t *testing.T) {
	dir := isolate(t)
	dotenv := "TWILIO_ACCOUNT_SID=AC_dotenv\nTWILIO_AUTH_TOKEN=secret_dotenv\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "AC_dotenv", cfg.Twilio.AccountSID)
	assert.Equal(t, "secret_dotenv", cfg.Twilio.AuthToken)

	// the real environment wins over .env
	t.Setenv("TWILIO_AUTH_TOKEN", "secret_env")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "secret_env", cfg.Twilio.AuthToken)
}

func TestRequireCredentials(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	err = cfg.RequireCredentials()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAuth)
	assert.Contains(t, err.Error(), "TWILIO_ACCOUNT_SID")
	assert.Contains(t, err.Error(), "TWILIO_AUTH_TOKEN")

	cfg.Twilio.AccountSID = "AC123"
	err = cfg.RequireCredentials()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing TWILIO_AUTH_TOKEN")
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	isolate(t)
	t.Setenv("TWCTL_HTTP_TIMEOUT", "0s")

	_, err := Load("")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
