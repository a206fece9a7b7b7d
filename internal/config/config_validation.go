// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Backend {
	case BackendFile:
		if cfg.Storage.Files.DataDir == "" {
			return ErrInvalidStorageConfigs
		}
	case BackendSQLite, BackendPostgres:
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Auth.SessionTimeout <= 0 || cfg.Auth.RememberMeDuration <= 0 ||
		cfg.Auth.PasswordMinLength <= 0 || cfg.Auth.MaxLoginAttempts <= 0 ||
		cfg.Auth.LockoutDuration <= 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Workers.JanitorInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
