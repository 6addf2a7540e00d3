// =============================================================================
// Coverage Report Generator - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file.
//
// CONFIGURATION FILE (config.yaml):
//   input_dir: ./input
//   output_dir: ./output
//   formats: [html, xlsx]
//   area:
//     title: Circle Wise Household Coverage
//   fleet:
//     ward_list: ./circle_ward_names.txt
//   normalization:
//     - field: Ward
//       actions:
//         - type: collapse_spaces
//
// A missing configuration file is not an error: every option has a default,
// so the tool runs out of the box against ./input.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/coverage-report/internal/aggregate"
	"github.com/ginjaninja78/coverage-report/internal/membership"
)

// =============================================================================
// OUTPUT FORMATS
// =============================================================================

const (
	FormatHTML = "html"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// knownFormats lists every output format the renderers support.
var knownFormats = map[string]bool{
	FormatHTML: true,
	FormatXLSX: true,
	FormatJSON: true,
	FormatXML:  true,
}

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for survey files when no file is named on the
	// command line. Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives the generated reports. Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives processed survey files when ArchiveInputs is
	// set. Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// OutputArchiveDir receives a copy of every generated report when
	// ArchiveOutputs is set. Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is an extra log destination besides stderr. Empty disables it.
	LogFile string `yaml:"log_file"`

	// LogLevel is one of "debug", "info", "warn", "error". Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat is the base name of generated reports (without
	// extension). Placeholders:
	//   {report}    - "area" or "fleet"
	//   {source}    - input file name without extension
	//   {timestamp} - generation time (YYYYMMDD_HHMMSS)
	//   {uuid}      - a random UUID
	// Default: "{report}_{source}_{timestamp}"
	OutputNameFormat string `yaml:"output_name_format"`

	// Formats lists the outputs to write: "html", "xlsx", "json", "xml".
	// Default: ["html"]
	Formats []string `yaml:"formats"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the number of input files processed at once.
	// Default: 1
	MaxConcurrency int `yaml:"max_concurrency"`

	// ArchiveInputs moves processed survey files to InputArchiveDir.
	ArchiveInputs bool `yaml:"archive_inputs"`

	// ArchiveOutputs copies generated reports to OutputArchiveDir.
	ArchiveOutputs bool `yaml:"archive_outputs"`

	// WriteErrorLog writes data-quality warnings next to the reports.
	WriteErrorLog bool `yaml:"write_error_log"`

	// =========================================================================
	// AGGREGATION SETTINGS
	// =========================================================================

	// Sentinel is the group of unclassified wards. Default: "Other Circles"
	Sentinel string `yaml:"sentinel"`

	// Fields overrides the survey header names.
	Fields aggregate.Fields `yaml:"fields"`

	// Area configures the area (zone/ward) report.
	Area ReportConfig `yaml:"area"`

	// Fleet configures the fleet (vehicle) report.
	Fleet ReportConfig `yaml:"fleet"`

	// Normalization lists clean-up rules applied to fields before
	// aggregation.
	Normalization []NormalizationRule `yaml:"normalization"`
}

// ReportConfig holds the settings of one report kind.
type ReportConfig struct {
	// Title is the report heading.
	Title string `yaml:"title"`

	// WardList is a membership file (text or YAML). For the area report it
	// is optional and replaces the built-in circles.
	WardList string `yaml:"ward_list"`

	// Policy resolves wards listed in several circles: "first" or "last".
	// Default: "first" for area, "last" for fleet.
	Policy string `yaml:"policy"`
}

// =============================================================================
// NORMALIZATION RULE STRUCTURE
// =============================================================================

// NormalizationRule lists clean-up actions for one field.
type NormalizationRule struct {
	// Field is the header name the rule applies to.
	Field string `yaml:"field"`

	// Actions are applied in order.
	Actions []NormalizationAction `yaml:"actions"`
}

// NormalizationAction is a single clean-up step.
type NormalizationAction struct {
	// Type is one of:
	//   - "trim", "uppercase", "lowercase", "collapse_spaces"
	//   - "prepend_string" / "append_string" : add Value
	//   - "replace"         : replace Find with Value
	//   - "regex_replace"   : replace matches of Find with Value
	//   - "pad_zeros_to_length" : left-pad with zeros to Value characters
	//   - "remove_leading_zeros"
	//   - "lookup"          : replace the whole value using LookupTable
	Type string `yaml:"type"`

	// Value is the parameter of the action.
	Value string `yaml:"value"`

	// Find is used by "replace" and "regex_replace".
	Find string `yaml:"find,omitempty"`

	// LookupTable maps input values to output values for "lookup".
	// Values not in the table are left unchanged.
	LookupTable map[string]string `yaml:"lookup_table,omitempty"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	cfg := &MainConfig{}
	applyMainConfigDefaults(cfg)
	return cfg
}

// LoadMainConfig loads the configuration from a YAML file. A missing file
// yields the defaults.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates a YAML configuration document.
func Parse(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset option.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{report}_{source}_{timestamp}"
	}
	if len(config.Formats) == 0 {
		config.Formats = []string{FormatHTML}
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 1
	}
	if config.Sentinel == "" {
		config.Sentinel = aggregate.DefaultSentinel
	}
	if config.Area.Title == "" {
		config.Area.Title = "Circle Wise Household Coverage Report"
	}
	if config.Area.Policy == "" {
		config.Area.Policy = membership.FirstWins.String()
	}
	if config.Fleet.Title == "" {
		config.Fleet.Title = "Vehicle & Route Wise Household Coverage Report"
	}
	if config.Fleet.WardList == "" {
		config.Fleet.WardList = "circle_ward_names.txt"
	}
	if config.Fleet.Policy == "" {
		config.Fleet.Policy = membership.LastWins.String()
	}
}

// validateMainConfig checks options that have a closed set of values.
func validateMainConfig(config *MainConfig) error {
	formats, err := ParseFormats(config.Formats)
	if err != nil {
		return err
	}
	config.Formats = formats

	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", config.LogLevel)
	}

	if _, err := membership.ParsePolicy(config.Area.Policy, membership.FirstWins); err != nil {
		return fmt.Errorf("area: %w", err)
	}
	if _, err := membership.ParsePolicy(config.Fleet.Policy, membership.LastWins); err != nil {
		return fmt.Errorf("fleet: %w", err)
	}

	for _, rule := range config.Normalization {
		if rule.Field == "" {
			return fmt.Errorf("normalization rule without field")
		}
	}

	return nil
}

// ParseFormats lowercases and checks a list of output formats. Duplicates
// are dropped; order is kept.
func ParseFormats(formats []string) ([]string, error) {
	seen := make(map[string]bool, len(formats))
	var out []string
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !knownFormats[f] {
			return nil, fmt.Errorf("unknown output format %q", f)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// HasFormat reports whether the given output format is enabled.
func (c *MainConfig) HasFormat(format string) bool {
	for _, f := range c.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// AreaPolicy returns the membership policy of the area report.
func (c *MainConfig) AreaPolicy() membership.Policy {
	p, _ := membership.ParsePolicy(c.Area.Policy, membership.FirstWins)
	return p
}

// FleetPolicy returns the membership policy of the fleet report.
func (c *MainConfig) FleetPolicy() membership.Policy {
	p, _ := membership.ParsePolicy(c.Fleet.Policy, membership.LastWins)
	return p
}

// AggregateOptions returns the fold options derived from the config.
func (c *MainConfig) AggregateOptions() aggregate.Options {
	return aggregate.Options{Fields: c.Fields, Sentinel: c.Sentinel}
}
