package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags := ParseFlags()

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	isJSONSpecified := false

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			isJSONSpecified = true
			jsonPath = cfg.JSONFilePath
		}
	}

	if isJSONSpecified {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

// withDefaults appends the built-in defaults as the lowest-priority source.
// mergo only fills zero-valued fields, so anything already provided by env,
// flags or the JSON file is left untouched.
func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

// defaultConfig returns the application defaults: 1h sessions, 30-day
// remember-me, 8-char passwords, 5-attempt lockout for 15 minutes, 30-day
// backup retention, imperial units, US Eastern timezone.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Name:    "FitGrit",
			Version: "1.0.0",
		},
		Auth: Auth{
			SessionTimeout:     time.Hour,
			RememberMeDuration: 30 * 24 * time.Hour,
			PasswordMinLength:  8,
			MaxLoginAttempts:   5,
			LockoutDuration:    15 * time.Minute,
		},
		Storage: Storage{
			Backend: BackendSQLite,
			DB: DB{
				DSN: "fitgrit.db",
			},
			Files: Files{
				DataDir:         "data",
				BackupEnabled:   true,
				BackupRetention: 30 * 24 * time.Hour,
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			JanitorInterval: 5 * time.Minute,
			PruneInterval:   time.Hour,
		},
		Defaults: Defaults{
			WeightUnit: "lbs",
			HeightUnit: "inches",
			Timezone:   "America/New_York",
		},
	}
}
