package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host                string `yaml:"host"`
		Port                int    `yaml:"port"`
		ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	} `yaml:"server"`
	Data struct {
		Dir          string `yaml:"dir"`
		ExportFile   string `yaml:"export_file"`
		TemplatesDir string `yaml:"templates_dir"`
		StaticDir    string `yaml:"static_dir"`
	} `yaml:"data"`
	Export struct {
		Format        string `yaml:"format"`
		SourceURL     string `yaml:"source_url"`
		MaxFetchBytes int    `yaml:"max_fetch_bytes"`
	} `yaml:"export"`
	Analytics struct {
		FeeMarker string `yaml:"fee_marker"`
	} `yaml:"analytics"`
	Charts struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"charts"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1-65535, got %d", c.Server.Port)
	}
	if c.Data.ExportFile == "" {
		return fmt.Errorf("data.export_file cannot be empty")
	}
	if c.Export.Format == "" {
		return fmt.Errorf("export.format cannot be empty")
	}
	if c.Export.MaxFetchBytes < 0 {
		return fmt.Errorf("export.max_fetch_bytes cannot be negative, got %d", c.Export.MaxFetchBytes)
	}
	return nil
}

// ExportPath resolves the export file against the data directory unless
// the configured path is already absolute.
func (c *Config) ExportPath() string {
	if filepath.IsAbs(c.Data.ExportFile) {
		return c.Data.ExportFile
	}
	return filepath.Join(c.Data.Dir, c.Data.ExportFile)
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

// DefaultConfig returns a config with every default applied, used by the
// CLI when no config file is given.
func DefaultConfig() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 30
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.ExportFile == "" {
		c.Data.ExportFile = "trade_data.htm"
	}
	if c.Data.TemplatesDir == "" {
		c.Data.TemplatesDir = filepath.Join("web", "templates")
	}
	if c.Data.StaticDir == "" {
		c.Data.StaticDir = filepath.Join("web", "static")
	}
	if c.Export.Format == "" {
		c.Export.Format = "mt4"
	}
	if c.Export.MaxFetchBytes == 0 {
		c.Export.MaxFetchBytes = 10 << 20 // 10MB, matches the upload cap of the terminal export
	}
	if c.Analytics.FeeMarker == "" {
		c.Analytics.FeeMarker = "Administration Fee"
	}
	if c.Charts.Width == 0 {
		c.Charts.Width = 1200
	}
	if c.Charts.Height == 0 {
		c.Charts.Height = 400
	}
}
