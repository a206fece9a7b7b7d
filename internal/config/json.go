package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations, so a config file can carry values like "1h".
type StructuredJSONConfig struct {
	App struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Auth struct {
		SessionTimeout     Duration `json:"session_timeout"`
		RememberMeDuration Duration `json:"remember_me_duration"`
		PasswordMinLength  int      `json:"password_min_length"`
		MaxLoginAttempts   int      `json:"max_login_attempts"`
		LockoutDuration    Duration `json:"lockout_duration"`
	} `json:"auth,omitempty"`

	Storage struct {
		Backend string `json:"backend"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			DataDir         string   `json:"data_dir"`
			BackupEnabled   bool     `json:"backup_enabled"`
			BackupRetention Duration `json:"backup_retention"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		JanitorInterval Duration `json:"janitor_interval"`
		PruneInterval   Duration `json:"prune_interval"`
	} `json:"workers,omitempty"`

	Defaults struct {
		WeightUnit string `json:"weight_unit"`
		HeightUnit string `json:"height_unit"`
		Timezone   string `json:"timezone"`
	} `json:"defaults,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:    jsonCfg.App.Name,
			Version: jsonCfg.App.Version,
		},
		Auth: Auth{
			SessionTimeout:     time.Duration(jsonCfg.Auth.SessionTimeout),
			RememberMeDuration: time.Duration(jsonCfg.Auth.RememberMeDuration),
			PasswordMinLength:  jsonCfg.Auth.PasswordMinLength,
			MaxLoginAttempts:   jsonCfg.Auth.MaxLoginAttempts,
			LockoutDuration:    time.Duration(jsonCfg.Auth.LockoutDuration),
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				DataDir:         jsonCfg.Storage.Files.DataDir,
				BackupEnabled:   jsonCfg.Storage.Files.BackupEnabled,
				BackupRetention: time.Duration(jsonCfg.Storage.Files.BackupRetention),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			JanitorInterval: time.Duration(jsonCfg.Workers.JanitorInterval),
			PruneInterval:   time.Duration(jsonCfg.Workers.PruneInterval),
		},
		Defaults: Defaults{
			WeightUnit: jsonCfg.Defaults.WeightUnit,
			HeightUnit: jsonCfg.Defaults.HeightUnit,
			Timezone:   jsonCfg.Defaults.Timezone,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
