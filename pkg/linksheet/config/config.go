// Package config loads link sheet settings from a YAML file and LINKSHEET_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Backend selects where the sheets live.
type Backend string

const (
	BackendXLSX   Backend = "xlsx"   // Local .xlsx workbook (default).
	BackendSheets Backend = "sheets" // Google Sheets spreadsheet.
)

// EnvPrefix prefixes every environment override, e.g. LINKSHEET_BITLY_TOKEN.
const EnvPrefix = "LINKSHEET"

type StorageConfig struct {
	Backend       Backend `mapstructure:"backend"`
	Workbook      string  `mapstructure:"workbook"`
	SpreadsheetID string  `mapstructure:"spreadsheet_id"`
	DataSheet     string  `mapstructure:"data_sheet"`
	ShortenSheet  string  `mapstructure:"shorten_sheet"`
	// InputCell and OutputCell are A1 references in the shorten sheet.
	InputCell  string `mapstructure:"input_cell"`
	OutputCell string `mapstructure:"output_cell"`
}

type BitlyConfig struct {
	Token             string  `mapstructure:"token"`
	GroupGUID         string  `mapstructure:"group_guid"`
	BaseURL           string  `mapstructure:"base_url"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

type GoogleConfig struct {
	// CredentialsFile is a service account or authorized user JSON file.
	// Empty means Application Default Credentials.
	CredentialsFile string `mapstructure:"credentials_file"`
	// DocumentLookup enables Drive title lookups for the xlsx backend.
	DocumentLookup bool `mapstructure:"document_lookup"`
}

type AccessConfig struct {
	// Owners may run update and shorten against a local workbook.
	Owners []string `mapstructure:"owners"`
}

type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Bitly   BitlyConfig   `mapstructure:"bitly"`
	Google  GoogleConfig  `mapstructure:"google"`
	Access  AccessConfig  `mapstructure:"access"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Log     LogConfig     `mapstructure:"log"`
}

// defaults lists every key so environment overrides reach Unmarshal.
var defaults = map[string]any{
	"storage.backend":           string(BackendXLSX),
	"storage.workbook":          "links.xlsx",
	"storage.spreadsheet_id":    "",
	"storage.data_sheet":        "Data",
	"storage.shorten_sheet":     "Make Short Url",
	"storage.input_cell":        "A2",
	"storage.output_cell":       "B2",
	"bitly.token":               "",
	"bitly.group_guid":          "",
	"bitly.base_url":            "https://api-ssl.bitly.com/v4",
	"bitly.requests_per_second": 0.0,
	"google.credentials_file":   "",
	"google.document_lookup":    false,
	"access.owners":             []string{},
	"fetch.timeout":             "60s",
	"fetch.user_agent":          "linksheet",
	"log.level":                 "info",
	"log.format":                "console",
}

// Load reads the configuration. With path empty, linksheet.yaml is searched
// in the working directory and $HOME/.config/linksheet, and a missing file
// is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("linksheet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/linksheet")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate reports every configuration error at once.
func (c *Config) Validate() error {
	var errs []string
	switch c.Storage.Backend {
	case BackendXLSX:
		if c.Storage.Workbook == "" {
			errs = append(errs, "storage.workbook is required for the xlsx backend")
		}
		if len(c.Access.Owners) == 0 {
			errs = append(errs, "access.owners is required for the xlsx backend")
		}
	case BackendSheets:
		if c.Storage.SpreadsheetID == "" {
			errs = append(errs, "storage.spreadsheet_id is required for the sheets backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid storage.backend: %q (must be xlsx or sheets)", c.Storage.Backend))
	}
	if c.Storage.DataSheet == "" || c.Storage.ShortenSheet == "" {
		errs = append(errs, "storage.data_sheet and storage.shorten_sheet are required")
	} else if c.Storage.DataSheet == c.Storage.ShortenSheet {
		errs = append(errs, "storage.data_sheet and storage.shorten_sheet must differ")
	}
	if c.Bitly.Token == "" {
		errs = append(errs, "bitly.token is required")
	}
	if c.Bitly.RequestsPerSecond < 0 {
		errs = append(errs, "bitly.requests_per_second must not be negative")
	}
	if c.Fetch.Timeout < 0 {
		errs = append(errs, "fetch.timeout must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("invalid log.level: %q", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Sprintf("invalid log.format: %q (must be json or console)", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, ", "))
	}
	return nil
}
