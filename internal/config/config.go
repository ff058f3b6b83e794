package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName        = "fluffyjobs"
	ConfigFileName = "config.json"

	defaultAPIBaseURL = "https://api.fluffyjobs.com/api"
)

// Config contains connection and default-search settings.
type Config struct {
	APIBaseURL      string `json:"api_base_url"`
	GoogleClientID  string `json:"google_client_id"`
	DefaultLocation string `json:"default_location"`
	DefaultType     string `json:"default_job_type"`
	RequestTimeout  int    `json:"request_timeout_seconds"`
}

func DefaultConfig() Config {
	return Config{
		APIBaseURL:      envString("FLUFFYJOBS_API_URL", defaultAPIBaseURL),
		GoogleClientID:  envString("FLUFFYJOBS_GOOGLE_CLIENT_ID", ""),
		DefaultLocation: envString("FLUFFYJOBS_DEFAULT_LOCATION", ""),
		DefaultType:     envString("FLUFFYJOBS_DEFAULT_TYPE", ""),
		RequestTimeout:  envInt("FLUFFYJOBS_TIMEOUT", 10),
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// DataDir is where session state and the catalog cache live. It defaults
// to the config dir so a single folder holds everything the CLI writes.
func DataDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("FLUFFYJOBS_DATA_DIR")); dir != "" {
		return dir, nil
	}
	return ConfigDir()
}

func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Init writes a default config.json if one doesn't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
