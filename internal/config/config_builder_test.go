package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result, earlier sources winning.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{Backend: BackendFile, Files: Files{DataDir: "/var/data"}}},
		&StructuredConfig{Storage: Storage{Backend: BackendPostgres}},
		defaultConfig(),
	)

	cfg, err := b.build()
	require.NoError(t, err)

	// the first source wins; defaults only fill the gaps
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/var/data", cfg.Storage.Files.DataDir)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTimeout)
}

// TestBuild_Defaults verifies that the built-in defaults alone produce a
// valid configuration.
func TestBuild_Defaults(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "FitGrit", cfg.App.Name)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "fitgrit.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutDuration)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.RememberMeDuration)
	assert.Equal(t, "lbs", cfg.Defaults.WeightUnit)
}

// TestBuild_ValidationFailure verifies that build rejects a merged config
// that breaks an invariant.
func TestBuild_ValidationFailure(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "unknown backend",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Backend = "redis" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "file backend without data dir",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.Backend = BackendFile
				cfg.Storage.Files.DataDir = ""
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "sql backend without dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "empty http address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero session timeout",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.SessionTimeout = 0 },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "zero max login attempts",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.MaxLoginAttempts = 0 },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "zero janitor interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.JanitorInterval = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := defaultConfig()
			test.mutate(cfg)

			b := newConfigBuilder()
			b.configs = append(b.configs, cfg)

			_, err := b.build()
			assert.ErrorIs(t, err, test.wantErr)
		})
	}
}

// TestWithJSON_UsesPathFromEarlierSource verifies that withJSON reads the
// file named by an already-collected source.
func TestWithJSON_UsesPathFromEarlierSource(t *testing.T) {
	p := writeTempJSONConfig(t, `{"server": {"http_address": "0.0.0.0:9999"}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: p})

	cfg, err := b.withJSON().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.HTTPAddress)
}

// TestWithJSON_NoPath verifies that withJSON is a no-op when no source named
// a config file.
func TestWithJSON_NoPath(t *testing.T) {
	b := newConfigBuilder().withJSON()
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// TestWithJSON_MissingFile verifies that a named but unreadable file sets
// the builder error.
func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	_, err := b.withJSON().build()
	assert.Error(t, err)
}
