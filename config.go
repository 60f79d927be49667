package cgeltree

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// DefaultConfigFile is the configuration file looked up when no path is given.
const DefaultConfigFile = "cgeltree.yaml"

// DefaultGapTerminal is the display token synthesized for gap nodes.
const DefaultGapTerminal = "—"

// Config represents the cgeltree configuration
type Config struct {
	Dialect           string           `yaml:"dialect"`
	TableStyleMarkers []string         `yaml:"table_style_markers"`
	InputDir          string           `yaml:"input_dir"`
	Output            string           `yaml:"output"`
	Extensions        ExtensionConfig  `yaml:"extensions"`
	Parallel          int              `yaml:"parallel"`
	LaTeX             LaTeXConfig      `yaml:"latex"`
	Database          DatabaseConfig   `yaml:"database"`
	Validation        ValidationConfig `yaml:"validation"`
	Markdown          MarkdownConfig   `yaml:"markdown"`
}

// ExtensionConfig lists the file extensions scanned for each direction
type ExtensionConfig struct {
	Tex2Cgel []string `yaml:"tex2cgel"`
	Cgel2Tex []string `yaml:"cgel2tex"`
}

// LaTeXConfig controls the macro-notation output
type LaTeXConfig struct {
	DocumentHeader string `yaml:"document_header"`
	DocumentFooter string `yaml:"document_footer"`
	GapTerminal    string `yaml:"gap_terminal"`
}

// DatabaseConfig represents the SQLite corpus sink
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ValidationConfig selects the checks run by the validate command
type ValidationConfig struct {
	CheckFormat     bool `yaml:"check_format"`
	CheckSentence   bool `yaml:"check_sentence"`
	CheckCategories bool `yaml:"check_categories"`
}

// MarkdownConfig lists the fenced code block languages that carry trees
type MarkdownConfig struct {
	TexLanguages  []string `yaml:"tex_languages"`
	CgelLanguages []string `yaml:"cgel_languages"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	if configPath == "" {
		configPath = DefaultConfigFile
	}

	// Check if config file exists
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := GetDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}

	expandConfigEnvVars(config)

	return config, nil
}

// ParseConfig parses YAML configuration data, validates it and applies defaults.
func ParseConfig(data []byte) (*Config, error) {
	// Keys missing from the file keep their default values
	config := GetDefaultConfig()

	// Strict mode rejects unknown keys
	err := yaml.UnmarshalWithOptions(data, config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDefaults(config)

	return config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	if _, err := ParseDialect(config.Dialect); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}

	if config.Parallel < 0 {
		return fmt.Errorf("%w: parallel must be non-negative, got %d", ErrConfigValidation, config.Parallel)
	}

	for _, ext := range append(append([]string{}, config.Extensions.Tex2Cgel...), config.Extensions.Cgel2Tex...) {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("%w: extension '%s' must start with a dot", ErrConfigValidation, ext)
		}
	}

	for _, marker := range config.TableStyleMarkers {
		if marker == "" {
			return fmt.Errorf("%w: table_style_markers must not contain empty strings", ErrConfigValidation)
		}
	}

	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Dialect:           string(DialectAuto),
		TableStyleMarkers: append([]string{}, DefaultTableStyleMarkers...),
		InputDir:          "",
		Output:            "",
		Extensions: ExtensionConfig{
			Tex2Cgel: []string{".tex", ".md"},
			Cgel2Tex: []string{".cgel", ".md"},
		},
		Parallel: 0,
		LaTeX: LaTeXConfig{
			DocumentHeader: DefaultDocumentHeader,
			DocumentFooter: DefaultDocumentFooter,
			GapTerminal:    DefaultGapTerminal,
		},
		Validation: ValidationConfig{
			CheckFormat:     true,
			CheckSentence:   true,
			CheckCategories: true,
		},
		Markdown: MarkdownConfig{
			TexLanguages:  []string{"latex", "tex"},
			CgelLanguages: []string{"cgel"},
		},
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	defaults := GetDefaultConfig()

	if config.Dialect == "" {
		config.Dialect = defaults.Dialect
	}

	if len(config.TableStyleMarkers) == 0 {
		config.TableStyleMarkers = defaults.TableStyleMarkers
	}

	if len(config.Extensions.Tex2Cgel) == 0 {
		config.Extensions.Tex2Cgel = defaults.Extensions.Tex2Cgel
	}

	if len(config.Extensions.Cgel2Tex) == 0 {
		config.Extensions.Cgel2Tex = defaults.Extensions.Cgel2Tex
	}

	if config.LaTeX.DocumentHeader == "" {
		config.LaTeX.DocumentHeader = defaults.LaTeX.DocumentHeader
	}

	if config.LaTeX.DocumentFooter == "" {
		config.LaTeX.DocumentFooter = defaults.LaTeX.DocumentFooter
	}

	if config.LaTeX.GapTerminal == "" {
		config.LaTeX.GapTerminal = defaults.LaTeX.GapTerminal
	}

	if len(config.Markdown.TexLanguages) == 0 {
		config.Markdown.TexLanguages = defaults.Markdown.TexLanguages
	}

	if len(config.Markdown.CgelLanguages) == 0 {
		config.Markdown.CgelLanguages = defaults.Markdown.CgelLanguages
	}
}

// DialectSetting returns the configured dialect. The value is validated at load time.
func (c *Config) DialectSetting() Dialect {
	d, err := ParseDialect(c.Dialect)
	if err != nil {
		return DialectAuto
	}

	return d
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		return os.Getenv(varName)
	})

	s = plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})

	return s
}

// expandConfigEnvVars expands environment variables in path-valued fields
func expandConfigEnvVars(config *Config) {
	config.InputDir = expandEnvVars(config.InputDir)
	config.Output = expandEnvVars(config.Output)
	config.Database.Path = expandEnvVars(config.Database.Path)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
