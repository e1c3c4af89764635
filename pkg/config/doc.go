// Package config provides configuration management for the fruits server.
//
// Configuration is layered: built-in defaults, then an optional YAML file
// ($FRUITS_CONFIG_PATH/fruits.yml, /etc/fruits/fruits.yml by default), then
// environment variables. The source of every attribute is recorded and shown
// by `fruitsctl configuration show`.
//
// # Key Configuration Options
//
//   - DATABASE_URL: database connection string (mongodb://, postgres://, sqlite://)
//   - PORT: server listen port
//   - BIND_ADDRESS: server bind address
//   - FRUITS_LOG_LEVEL: logging verbosity
//   - FRUITS_VIEWS_DIR: load templates from this directory
//   - FRUITS_WATCH_VIEWS: reload templates from FRUITS_VIEWS_DIR on change
package config
