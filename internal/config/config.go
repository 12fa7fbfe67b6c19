package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	envPrefix = "noticeboard"

	DefaultBaseURL        = "http://localhost:8081"
	DefaultRequestTimeout = 10 * time.Second
)

// AppConfig holds the settings of one client run.
//
// Values are layered: built-in defaults, then the JSON config file, then a
// .env file in the working directory, then NOTICEBOARD_* environment variables.
type AppConfig struct {
	// BaseURL is the server root; the collection lives at {BaseURL}/notices.
	BaseURL string `split_words:"true" validate:"required,url"`

	// RequestTimeout bounds every call to the notices endpoint.
	RequestTimeout time.Duration `split_words:"true" validate:"gt=0"`

	// DataDir holds the log directory.
	DataDir string `split_words:"true" validate:"required"`

	// Debug lowers the log level to trace.
	Debug bool
}

// fileConfig is the on-disk shape of the config file.
type fileConfig struct {
	BaseURL        string `json:"base_url"`
	RequestTimeout string `json:"request_timeout"`
	DataDir        string `json:"data_dir"`
	Debug          bool   `json:"debug"`
}

var validate = validator.New()

func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "noticeboard", "config.json"), nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "noticeboard"), nil
}

// LoadConfig resolves the effective configuration. A missing config file or
// .env file is not an error.
func LoadConfig() (AppConfig, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return AppConfig{}, err
	}

	path, err := configFilePath()
	if err != nil {
		return AppConfig{}, err
	}
	if err := mergeFile(&cfg, path); err != nil {
		return AppConfig{}, err
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}

	// unset variables leave the layered value in place
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func mergeFile(cfg *AppConfig, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("parse config request_timeout %q: %w", fc.RequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.Debug {
		cfg.Debug = true
	}
	return nil
}

func defaultConfig() (AppConfig, error) {
	dir, err := defaultDataDir()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: DefaultRequestTimeout,
		DataDir:        dir,
	}, nil
}
