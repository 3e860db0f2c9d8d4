/*
Package config manages the TOML configuration of wordbench.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordbench/internal/utils"
	"github.com/charmbracelet/log"
)

const appName = "wordbench"

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has options shared by the IPC and HTTP servers.
type ServerConfig struct {
	MaxLimit     int    `toml:"max_limit"`
	MinPrefix    int    `toml:"min_prefix"`
	MaxPrefix    int    `toml:"max_prefix"`
	HTTPAddr     string `toml:"http_addr"`
	EnableFilter bool   `toml:"enable_filter"`
}

// DictConfig says where words come from and which indices hold them.
type DictConfig struct {
	Path      string   `toml:"path"`
	RedisURL  string   `toml:"redis_url"`
	RedisKey  string   `toml:"redis_key"`
	Indices   []string `toml:"indices"`
	CacheSize int      `toml:"cache_size"`
}

// CliConfig holds interactive cli options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    1,
			MaxPrefix:    60,
			HTTPAddr:     ":7000",
			EnableFilter: false,
		},
		Dict: DictConfig{
			Path:      "data/words.csv",
			RedisKey:  "wordbench:dictionary",
			Indices:   []string{"trie", "tst"},
			CacheSize: 0,
		},
		CLI: CliConfig{
			DefaultLimit:    5,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultNoFilter: true,
		},
	}
}

// GetConfigDir returns the config directory, trying in order
// the user config dir, ~/.config and the executable's dir.
func GetConfigDir() (string, error) {
	if userDir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(userDir, appName)
		if status := utils.CheckDirStatus(path); status.Writable {
			return path, nil
		}
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(homeDir, ".config", appName)
		if status := utils.CheckDirStatus(path); status.Writable {
			return path, nil
		}
	} else {
		log.Errorf("Failed to get home directory: %v", err)
	}

	execDir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from the -config flag
// 2. Default path: [UserConfigDir]/wordbench/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customPath string) (*Config, string, error) {
	if customPath != "" {
		if _, statErr := os.Stat(customPath); statErr == nil {
			config, err := LoadConfig(customPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customPath)
				return config, customPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load config at %s: %v. Using built-in defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from path, writing the defaults there first if
// the file is missing.
func InitConfig(path string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		log.Warnf("Failed to create config directory for %s: %v. Using built-in defaults...", path, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(path) {
		config := DefaultConfig()
		if err := SaveConfig(config, path); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", path, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", path)
		return config, nil
	}

	return LoadConfig(path)
}

// LoadConfig loads from a TOML file. A file that fails to decode is
// recovered section by section, falling back to defaults for the rest.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(path, config); err != nil {
		return tryPartialParse(path), nil
	}
	return config, nil
}

func tryPartialParse(path string) *Config {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(path)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", path, err)
		return config
	}

	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(raw, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractString(data, "http_addr"); ok {
		server.HTTPAddr = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractString(data, "redis_url"); ok {
		dict.RedisURL = val
	}
	if val, ok := utils.ExtractString(data, "redis_key"); ok {
		dict.RedisKey = val
	}
	if val, ok := utils.ExtractStrings(data, "indices"); ok {
		dict.Indices = val
	}
	if val, ok := utils.ExtractInt(data, "cache_size"); ok {
		dict.CacheSize = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, path string) error {
	return utils.SaveTOMLFile(config, path)
}

// GetActiveConfigPath returns the absolute path of the loaded config file.
func GetActiveConfigPath(path string) string {
	if path == "" {
		return "builtin defaults"
	}
	return utils.AbsPath(path)
}
