// Package config loads the settings of the comad tool: the parser policies
// and prefixes, the default manifest and output preferences.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/steinsut/comad/pkg/engine"
)

// Settings is the merged configuration.
type Settings struct {
	Parser engine.Config `yaml:"parser"`
	// Manifest is the default manifest file used when none is given.
	Manifest string `yaml:"manifest"`
	// Output is the default format for the parse command.
	Output  string `yaml:"output"`
	NoColor bool   `yaml:"no_color"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	return &Settings{
		Parser: *engine.DefaultConfig(),
		Output: "table",
	}
}

// flag name -> config key
var flagKeys = map[string]string{
	"long-prefix":              "parser.long_prefix",
	"short-prefix":             "parser.short_prefix",
	"flag-prefix":              "parser.flag_prefix",
	"skip-unknown-option":      "parser.skip_unknown_option",
	"skip-duplicate-option":    "parser.skip_duplicate_option",
	"skip-invalid-value-parse": "parser.skip_invalid_value_parse",
	"verbose":                  "parser.verbose",
	"manifest":                 "manifest",
	"output":                   "output",
	"no-color":                 "no_color",
}

// Loader reads settings from, in increasing priority: built-in defaults, a
// YAML config file, environment variables and bound command-line flags.
type Loader struct {
	appName   string
	envPrefix string
	path      string
	v         *viper.Viper
}

// NewLoader creates a loader for the named application. Environment
// variables use the upper-cased name as prefix (COMAD_PARSER_VERBOSE).
func NewLoader(appName string) *Loader {
	envPrefix := strings.ToUpper(strings.ReplaceAll(appName, "-", "_"))

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault("parser.long_prefix", defaults.Parser.LongPrefix)
	v.SetDefault("parser.short_prefix", defaults.Parser.ShortPrefix)
	v.SetDefault("parser.flag_prefix", defaults.Parser.FlagPrefix)
	v.SetDefault("parser.skip_unknown_option", defaults.Parser.SkipUnknownOption)
	v.SetDefault("parser.skip_duplicate_option", defaults.Parser.SkipDuplicateOption)
	v.SetDefault("parser.skip_invalid_value_parse", defaults.Parser.SkipInvalidValueParse)
	v.SetDefault("parser.verbose", defaults.Parser.Verbose)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("no_color", defaults.NoColor)

	return &Loader{
		appName:   appName,
		envPrefix: envPrefix,
		v:         v,
	}
}

// WithPath makes the loader read this file instead of the default location.
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// ConfigPath returns the config file the loader will read. An explicit
// path wins, then <PREFIX>_CONFIG, then $XDG_CONFIG_HOME/<app>/config.yaml.
func (l *Loader) ConfigPath() string {
	if l.path != "" {
		return l.path
	}
	if custom := os.Getenv(l.envPrefix + "_CONFIG"); custom != "" {
		return custom
	}
	return filepath.Join(xdg.ConfigHome, l.appName, "config.yaml")
}

// DataDir returns the XDG data directory, where manifests are searched for.
func (l *Loader) DataDir() string {
	return filepath.Join(xdg.DataHome, l.appName)
}

// RegisterFlags adds the settings flags to fs with built-in defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultSettings()
	fs.String("long-prefix", d.Parser.LongPrefix, "Prefix of long option names")
	fs.String("short-prefix", d.Parser.ShortPrefix, "Prefix of short option names")
	fs.String("flag-prefix", d.Parser.FlagPrefix, "Prefix required before flag names (empty matches bare names)")
	fs.Bool("skip-unknown-option", d.Parser.SkipUnknownOption, "Ignore unknown options instead of failing")
	fs.Bool("skip-duplicate-option", d.Parser.SkipDuplicateOption, "Ignore repeated options instead of failing")
	fs.Bool("skip-invalid-value-parse", d.Parser.SkipInvalidValueParse, "Ignore unconvertible option values instead of failing")
	fs.BoolP("verbose", "v", d.Parser.Verbose, "Trace every parsing decision")
	fs.StringP("manifest", "f", d.Manifest, "Command manifest file")
	fs.StringP("output", "o", d.Output, "Output format (table, json, yaml)")
	fs.Bool("no-color", d.NoColor, "Disable colored output")
}

// BindFlags binds the flags added by RegisterFlags so that flags set on the
// command line override every other source. Flags missing from fs are skipped.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := l.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load merges all sources and validates the result. A missing config file
// is not an error.
func (l *Loader) Load() (*Settings, error) {
	path := l.ConfigPath()
	if _, err := os.Stat(path); err == nil {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	} else if l.path != "" {
		return nil, fmt.Errorf("config file %s does not exist", path)
	}

	s := &Settings{
		Parser: engine.Config{
			LongPrefix:            l.v.GetString("parser.long_prefix"),
			ShortPrefix:           l.v.GetString("parser.short_prefix"),
			FlagPrefix:            l.v.GetString("parser.flag_prefix"),
			SkipUnknownOption:     l.v.GetBool("parser.skip_unknown_option"),
			SkipDuplicateOption:   l.v.GetBool("parser.skip_duplicate_option"),
			SkipInvalidValueParse: l.v.GetBool("parser.skip_invalid_value_parse"),
			Verbose:               l.v.GetBool("parser.verbose"),
		},
		Manifest: l.v.GetString("manifest"),
		Output:   l.v.GetString("output"),
		NoColor:  l.v.GetBool("no_color"),
	}

	if err := NewValidator().Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}
