package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{"STAGE", "PORT", "DATABASE_URL", "LOG_LEVEL", "SESSION_CLEANUP_INTERVAL"}

// Registers a restore for every config key and then removes it from
// the environment so only the case's values are visible.
func clearConfigEnv(t *testing.T) {
	t.Helper()

	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		expected    config
		expectedErr string
	}{
		{
			name: "defaults",
			env:  map[string]string{"STAGE": "prod"},
			expected: config{
				stage:           "prod",
				port:            8000,
				logLevel:        zerolog.InfoLevel,
				cleanupInterval: time.Minute * 20,
			},
		},
		{
			name: "every value set",
			env: map[string]string{
				"STAGE":                    "dev",
				"PORT":                     "9090",
				"DATABASE_URL":             "postgres://localhost:5432/battleship",
				"LOG_LEVEL":                "debug",
				"SESSION_CLEANUP_INTERVAL": "90s",
			},
			expected: config{
				stage:           "dev",
				port:            9090,
				databaseUrl:     "postgres://localhost:5432/battleship",
				logLevel:        zerolog.DebugLevel,
				cleanupInterval: time.Second * 90,
			},
		},
		{
			name:        "missing stage",
			env:         map[string]string{},
			expectedErr: `stage must be either dev or prod, got: ""`,
		},
		{
			name:        "unknown stage",
			env:         map[string]string{"STAGE": "staging"},
			expectedErr: `stage must be either dev or prod, got: "staging"`,
		},
		{
			name:        "port is not a number",
			env:         map[string]string{"STAGE": "prod", "PORT": "eighty"},
			expectedErr: "invalid PORT",
		},
		{
			name:        "unknown log level",
			env:         map[string]string{"STAGE": "prod", "LOG_LEVEL": "loud"},
			expectedErr: "invalid LOG_LEVEL",
		},
		{
			name:        "cleanup interval without unit",
			env:         map[string]string{"STAGE": "prod", "SESSION_CLEANUP_INTERVAL": "20"},
			expectedErr: "invalid SESSION_CLEANUP_INTERVAL",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clearConfigEnv(t)
			for key, value := range test.env {
				t.Setenv(key, value)
			}

			cfg, err := loadConfig()
			if test.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expected, cfg)
		})
	}
}

func TestLoadConfigReadsDotEnvOutsideProd(t *testing.T) {
	clearConfigEnv(t)

	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STAGE=dev\nPORT=8181\nLOG_LEVEL=warn\n"), 0o600))
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.stage)
	assert.Equal(t, 8181, cfg.port)
	assert.Equal(t, zerolog.WarnLevel, cfg.logLevel)
}

func TestLoadConfigSkipsDotEnvInProd(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("STAGE", "prod")

	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=8181\n"), 0o600))
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.port)
}
