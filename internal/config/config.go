package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvConfig      = "TIMEKEEPER_CONFIG"
	EnvDataDir     = "TIMEKEEPER_DATA_DIR"
	EnvProject     = "TIMEKEEPER_PROJECT"
	EnvUser        = "TIMEKEEPER_USER"
	EnvLogUseCases = "TIMEKEEPER_LOG_USE_CASES"
)

const (
	defaultDataDir   = "data"
	defaultConfigRel = ".timekeeper/config.yaml"
)

// Config holds runtime settings for the timekeeper CLI.
type Config struct {
	// DataDir holds the <slug>_time_log.json files.
	DataDir string `yaml:"data_dir"`

	// Project and User preselect the menu and default the command flags.
	Project string `yaml:"project"`
	User    string `yaml:"user"`

	// LogUseCases writes one structured log line per service call to stderr.
	LogUseCases bool `yaml:"log_use_cases"`
}

// DefaultConfig returns a Config whose data directory is "data" next to
// the running executable.
func DefaultConfig() Config {
	return Config{DataDir: defaultDataDirPath()}
}

// LoadConfig layers, in order: defaults, the YAML file at path (or the
// TIMEKEEPER_CONFIG file, or ~/.timekeeper/config.yaml when it exists),
// then environment variables. An explicitly named file must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		explicit = false
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, defaultConfigRel)
		}
	}

	if path != "" {
		if err := applyFile(&cfg, path, explicit); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if fileCfg.DataDir != "" {
		cfg.DataDir = resolveRelative(fileCfg.DataDir, filepath.Dir(path))
	}
	if fileCfg.Project != "" {
		cfg.Project = fileCfg.Project
	}
	if fileCfg.User != "" {
		cfg.User = fileCfg.User
	}
	if fileCfg.LogUseCases {
		cfg.LogUseCases = true
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvProject); v != "" {
		cfg.Project = v
	}
	if v := os.Getenv(EnvUser); v != "" {
		cfg.User = v
	}
	if v := os.Getenv(EnvLogUseCases); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
}

// resolveRelative anchors a relative data dir from the config file to the
// file's directory. "~" paths are left for the store to expand.
func resolveRelative(dir, base string) string {
	if filepath.IsAbs(dir) || dir == "~" || strings.HasPrefix(dir, "~/") {
		return dir
	}
	return filepath.Join(base, dir)
}

func defaultDataDirPath() string {
	exe, err := os.Executable()
	if err != nil {
		return defaultDataDir
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), defaultDataDir)
}
