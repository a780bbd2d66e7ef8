package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file and applies
// defaults. The result still needs Validate once command-line overrides are in.
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config, err := ParseYAML(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", y.filename, err)
	}

	y.config = config
	return config, nil
}

// ParseYAML decodes a YAML document. Unknown keys are rejected.
func ParseYAML(data []byte) (*ConfigData, error) {
	var yamlConfig ConfigYAML

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Dataset: DatasetData{
			Path:       yamlConfig.Dataset.Path,
			Format:     yamlConfig.Dataset.Format,
			Table:      yamlConfig.Dataset.Table,
			DateLayout: yamlConfig.Dataset.DateLayout,
			Columns: ColumnsData{
				Date:    yamlConfig.Dataset.Columns.Date,
				Season:  yamlConfig.Dataset.Columns.Season,
				Weather: yamlConfig.Dataset.Columns.Weather,
				Weekday: yamlConfig.Dataset.Columns.Weekday,
				Count:   yamlConfig.Dataset.Columns.Count,
			},
		},
		Server: ServerData{
			Cert:       yamlConfig.Server.Cert,
			Key:        yamlConfig.Server.Key,
			Port:       yamlConfig.Server.Port,
			ListenAddr: yamlConfig.Server.ListenAddr,
		},
		Dashboard: DashboardData{
			Title:  yamlConfig.Dashboard.Title,
			Locale: yamlConfig.Dashboard.Locale,
			Footer: yamlConfig.Dashboard.Footer,
		},
		Log: LogData{
			File:       yamlConfig.Log.File,
			MaxSizeMB:  yamlConfig.Log.MaxSizeMB,
			MaxBackups: yamlConfig.Log.MaxBackups,
			MaxAgeDays: yamlConfig.Log.MaxAgeDays,
		},
	}

	config.ApplyDefaults()
	if err := config.checkValues(); err != nil {
		return nil, err
	}
	return config, nil
}

// GetDatasetConfig returns the dataset section
func (y *YAMLProvider) GetDatasetConfig() (*DatasetData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Dataset, nil
}

// GetServerConfig returns the server section
func (y *YAMLProvider) GetServerConfig() (*ServerData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Server, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with the file's hyphenated keys
type ConfigYAML struct {
	Dataset   DatasetYAML   `yaml:"dataset"`
	Server    ServerYAML    `yaml:"server,omitempty"`
	Dashboard DashboardYAML `yaml:"dashboard,omitempty"`
	Log       LogYAML       `yaml:"log,omitempty"`
}

type DatasetYAML struct {
	Path       string      `yaml:"path"`
	Format     string      `yaml:"format,omitempty"`
	Table      string      `yaml:"table,omitempty"`
	DateLayout string      `yaml:"date-layout,omitempty"`
	Columns    ColumnsYAML `yaml:"columns,omitempty"`
}

type ColumnsYAML struct {
	Date    string `yaml:"date,omitempty"`
	Season  string `yaml:"season,omitempty"`
	Weather string `yaml:"weather,omitempty"`
	Weekday string `yaml:"weekday,omitempty"`
	Count   string `yaml:"count,omitempty"`
}

type ServerYAML struct {
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	ListenAddr string `yaml:"listen-addr,omitempty"`
}

type DashboardYAML struct {
	Title  string `yaml:"title,omitempty"`
	Locale string `yaml:"locale,omitempty"`
	Footer string `yaml:"footer,omitempty"`
}

type LogYAML struct {
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max-size-mb,omitempty"`
	MaxBackups int    `yaml:"max-backups,omitempty"`
	MaxAgeDays int    `yaml:"max-age-days,omitempty"`
}
