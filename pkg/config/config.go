package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/logging"
)

const (
	DefaultConfigPath = "/etc/fruits"
	ConfigFileName    = "fruits.yml"
)

// FruitsConfig holds all server configuration settings
type FruitsConfig struct {
	// DatabaseURL is the connection string of the fruits database
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// Port is the TCP port the server listens on
	Port string `yaml:"port" json:"port"`

	// BindAddress is the interface the server listens on, empty for all
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level"`

	// ViewsDir loads templates from disk instead of the embedded set
	ViewsDir string `yaml:"views_dir" json:"views_dir"`

	// WatchViews reloads templates from ViewsDir when they change
	WatchViews bool `yaml:"watch_views" json:"watch_views"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values
func newDefault() *FruitsConfig {
	return &FruitsConfig{
		LogLevel: "info",
		sources:  make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*FruitsConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("FRUITS_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig FruitsConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"database_url", "port", "bind_address",
		"log_level", "views_dir", "watch_views",
	}
}

func (c *FruitsConfig) applyFileConfig(file *FruitsConfig) {
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = "file"
	}
	if file.Port != "" {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.ViewsDir != "" {
		c.ViewsDir = file.ViewsDir
		c.sources["views_dir"] = "file"
	}
	if file.WatchViews {
		c.WatchViews = true
		c.sources["watch_views"] = "file"
	}
}

func (c *FruitsConfig) applyEnvConfig() {
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.DatabaseURL = val
		c.sources["database_url"] = "environment"
	}
	if val := os.Getenv("PORT"); val != "" {
		c.Port = val
		c.sources["port"] = "environment"
	}
	if val := os.Getenv("BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("FRUITS_LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("FRUITS_VIEWS_DIR"); val != "" {
		c.ViewsDir = val
		c.sources["views_dir"] = "environment"
	}
	if val := os.Getenv("FRUITS_WATCH_VIEWS"); val != "" {
		c.WatchViews = val == "true" || val == "1"
		c.sources["watch_views"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *FruitsConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *FruitsConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Addr returns the host:port the server should listen on
func (c *FruitsConfig) Addr() string {
	return c.BindAddress + ":" + c.Port
}

// Validate validates the configuration. The database URL and port are
// deliberately left to the driver and the listener.
func (c *FruitsConfig) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level value: %w", err)
	}
	if c.WatchViews && c.ViewsDir == "" {
		return fmt.Errorf("watch_views requires views_dir")
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *FruitsConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "database_url", Value: redactURL(c.DatabaseURL), Source: c.Source("database_url")},
		{Name: "port", Value: c.Port, Source: c.Source("port")},
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "views_dir", Value: c.ViewsDir, Source: c.Source("views_dir")},
		{Name: "watch_views", Value: strconv.FormatBool(c.WatchViews), Source: c.Source("watch_views")},
	}
}

// FormatText returns a text representation of the configuration
func (c *FruitsConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *FruitsConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// redactURL masks the password of a connection URL
func redactURL(s string) string {
	at := strings.LastIndex(s, "@")
	scheme := strings.Index(s, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return s
	}
	userinfo := s[scheme+3 : at]
	if colon := strings.Index(userinfo, ":"); colon >= 0 {
		return s[:scheme+3] + userinfo[:colon] + ":xxxxx" + s[at:]
	}
	return s
}
