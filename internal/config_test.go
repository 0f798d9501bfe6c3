package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "ws://localhost:4000/socket", cfg.ServerURL)
	require.Equal(t, "5", cfg.DefaultCapacity)
	require.Equal(t, 5*time.Second, cfg.DialTimeout)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PINCHAT_SERVER_URL", "wss://chat.example.com/socket")
	t.Setenv("PINCHAT_DEFAULT_CAPACITY", "8")
	t.Setenv("PINCHAT_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "wss://chat.example.com/socket", cfg.ServerURL)
	require.Equal(t, "8", cfg.DefaultCapacity)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_RejectsInvalidServerURL(t *testing.T) {
	t.Setenv("PINCHAT_SERVER_URL", "not a url")

	_, err := LoadConfig()
	require.Error(t, err)
}
