package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSourceFromCredentialsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adc.json")
	creds := `{
  "type": "authorized_user",
  "client_id": "client-id.apps.googleusercontent.com",
  "client_secret": "secret",
  "refresh_token": "refresh"
}`
	require.NoError(t, os.WriteFile(path, []byte(creds), 0o600))
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", path)

	ts, err := TokenSource(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ts)

	client, err := HTTPClient(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestTokenSourceBadCredentialsFile(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", filepath.Join(t.TempDir(), "missing.json"))

	_, err := TokenSource(context.Background())
	assert.ErrorContains(t, err, "application default credentials")
}
