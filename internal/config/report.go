package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/lap.report/internal/units"
)

// ReportConfig holds startup defaults for the lap report tool. All fields are
// optional pointers so a partial JSON file only overrides what it names;
// the Get* methods provide fallback defaults for anything left unset.
type ReportConfig struct {
	// DatabasePath is the SQLite database file for stored laps and comparisons.
	DatabasePath *string `json:"database_path,omitempty"`

	// Units is the default speed unit for reports and API responses
	// (mps, mph, kmph or kph).
	Units *string `json:"units,omitempty"`

	// Listen is the address the HTTP server binds to in serve mode.
	Listen *string `json:"listen,omitempty"`

	// HTMLReport is the output path for the interactive HTML report.
	HTMLReport *string `json:"html_report,omitempty"`

	// PNGDir is the directory static PNG charts are written to.
	PNGDir *string `json:"png_dir,omitempty"`

	// StoreComparisons controls whether comparison summaries are recorded
	// in the database after a batch run.
	StoreComparisons *bool `json:"store_comparisons,omitempty"`
}

// EmptyReportConfig returns a ReportConfig with all fields unset.
func EmptyReportConfig() *ReportConfig {
	return &ReportConfig{}
}

// LoadReportConfig loads a ReportConfig from a JSON file. The file must have
// a .json extension and stay under the max file size. Fields omitted from the
// JSON retain their defaults, so partial configs are safe.
func LoadReportConfig(path string) (*ReportConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyReportConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *ReportConfig) Validate() error {
	if c.Units != nil && *c.Units != "" {
		if !units.IsValid(*c.Units) {
			return fmt.Errorf("invalid units %q (must be one of: %s)", *c.Units, units.GetValidUnitsString())
		}
	}
	if c.DatabasePath != nil && *c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty when set")
	}
	return nil
}

// GetDatabasePath returns the database path or the default.
func (c *ReportConfig) GetDatabasePath() string {
	if c.DatabasePath == nil || *c.DatabasePath == "" {
		return "laps.db"
	}
	return *c.DatabasePath
}

// GetUnits returns the configured units or the default.
func (c *ReportConfig) GetUnits() string {
	if c.Units == nil || *c.Units == "" {
		return units.KPH
	}
	return *c.Units
}

// GetListen returns the serve address or the default.
func (c *ReportConfig) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return ":8080"
	}
	return *c.Listen
}

// GetHTMLReport returns the HTML report path, empty meaning disabled.
func (c *ReportConfig) GetHTMLReport() string {
	if c.HTMLReport == nil {
		return ""
	}
	return *c.HTMLReport
}

// GetPNGDir returns the PNG output directory, empty meaning disabled.
func (c *ReportConfig) GetPNGDir() string {
	if c.PNGDir == nil {
		return ""
	}
	return *c.PNGDir
}

// GetStoreComparisons reports whether comparison summaries should be recorded.
func (c *ReportConfig) GetStoreComparisons() bool {
	if c.StoreComparisons == nil {
		return true
	}
	return *c.StoreComparisons
}
