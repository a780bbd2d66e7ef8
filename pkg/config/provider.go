package config

import (
	"errors"
	"fmt"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetDatasetConfig() (*DatasetData, error)
	GetServerConfig() (*ServerData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Dataset   DatasetData   `json:"dataset"`
	Server    ServerData    `json:"server"`
	Dashboard DashboardData `json:"dashboard"`
	Log       LogData       `json:"log"`
}

// DatasetData describes where the usage dataset lives and how to read it
type DatasetData struct {
	Path       string      `json:"path"`
	Format     string      `json:"format,omitempty"`
	Table      string      `json:"table,omitempty"`
	DateLayout string      `json:"date_layout,omitempty"`
	Columns    ColumnsData `json:"columns"`
}

// ColumnsData maps record fields to source column names
type ColumnsData struct {
	Date    string `json:"date,omitempty"`
	Season  string `json:"season,omitempty"`
	Weather string `json:"weather,omitempty"`
	Weekday string `json:"weekday,omitempty"`
	Count   string `json:"count,omitempty"`
}

type ServerData struct {
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
	Port       int    `json:"port,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
}

type DashboardData struct {
	Title  string `json:"title,omitempty"`
	Locale string `json:"locale,omitempty"`
	Footer string `json:"footer,omitempty"`
}

// LogData configures the optional rotating log file
type LogData struct {
	File       string `json:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty"`
}

const (
	DefaultListenAddr = "0.0.0.0"
	DefaultPort       = 8080
	DefaultTable      = "day"
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *ConfigData {
	c := &ConfigData{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unset fields with their defaults
func (c *ConfigData) ApplyDefaults() {
	if c.Dataset.Table == "" {
		c.Dataset.Table = DefaultTable
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Log.File != "" {
		if c.Log.MaxSizeMB == 0 {
			c.Log.MaxSizeMB = DefaultMaxSizeMB
		}
		if c.Log.MaxBackups == 0 {
			c.Log.MaxBackups = DefaultMaxBackups
		}
		if c.Log.MaxAgeDays == 0 {
			c.Log.MaxAgeDays = DefaultMaxAgeDays
		}
	}
}

// Validate checks the settings that cannot be defaulted. The dataset path
// may come from the command line, so it is only required here.
func (c *ConfigData) Validate() error {
	if c.Dataset.Path == "" {
		return errors.Join(errors.New("dataset.path is required"), c.checkValues())
	}
	return c.checkValues()
}

// checkValues validates the values that are set
func (c *ConfigData) checkValues() error {
	var errs []error
	switch c.Dataset.Format {
	case "", "csv", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("dataset.format %q must be csv or sqlite", c.Dataset.Format))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if (c.Server.Cert == "") != (c.Server.Key == "") {
		errs = append(errs, errors.New("server.cert and server.key must be set together"))
	}
	switch c.Dashboard.Locale {
	case "", "en", "id":
	default:
		errs = append(errs, fmt.Errorf("dashboard.locale %q must be en or id", c.Dashboard.Locale))
	}
	return errors.Join(errs...)
}
