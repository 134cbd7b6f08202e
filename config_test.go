package secretshare_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oarkflow/secretshare"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("SECRETSHARE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	s, err := secretshare.LoadSettings()
	require.NoError(t, err)
	require.Equal(t, 5, s.Parts)
	require.Equal(t, 3, s.Threshold)
	require.Equal(t, ":8080", s.Listen)
}

func TestLoadSettingsFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"parts: 7\nthreshold: 4\nlisten: \":9000\"\nses:\n  region: us-east-1\n  sender: shares@example.com\n"), 0600))
	t.Setenv("SECRETSHARE_CONFIG", path)
	t.Setenv("SECRETSHARE_ADDR", ":9999")

	s, err := secretshare.LoadSettings()
	require.NoError(t, err)
	require.Equal(t, 7, s.Parts)
	require.Equal(t, 4, s.Threshold)
	require.Equal(t, ":9999", s.Listen) // env wins over file
	require.Equal(t, "us-east-1", s.SES.Region)
	require.Equal(t, "shares@example.com", s.SES.Sender)
}

func TestLoadSettingsRejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parts: 2\nthreshold: 5\n"), 0600))
	t.Setenv("SECRETSHARE_CONFIG", path)

	_, err := secretshare.LoadSettings()
	require.ErrorIs(t, err, secretshare.ErrInvalidParameters)
}
