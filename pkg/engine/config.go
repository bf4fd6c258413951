package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Config selects the token prefixes and failure policies of a Parser. It is
// fixed when the Parser is built.
type Config struct {
	// LongPrefix introduces an option by its long name ("--name").
	LongPrefix string `yaml:"long_prefix" mapstructure:"long_prefix"`
	// ShortPrefix introduces an option by its one-character short name ("-n").
	ShortPrefix string `yaml:"short_prefix" mapstructure:"short_prefix"`
	// FlagPrefix, when set, must precede every flag token. Flags are matched
	// by name alone when it is empty.
	FlagPrefix string `yaml:"flag_prefix" mapstructure:"flag_prefix"`

	// SkipUnknownOption ignores unregistered option names instead of failing.
	SkipUnknownOption bool `yaml:"skip_unknown_option" mapstructure:"skip_unknown_option"`
	// SkipDuplicateOption ignores repeated options instead of failing.
	SkipDuplicateOption bool `yaml:"skip_duplicate_option" mapstructure:"skip_duplicate_option"`
	// SkipInvalidValueParse ignores option values that cannot be converted
	// instead of failing. Positional arguments always fail.
	SkipInvalidValueParse bool `yaml:"skip_invalid_value_parse" mapstructure:"skip_invalid_value_parse"`

	// Verbose traces every parsing decision at debug level.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the strict configuration with "--" and "-" prefixes.
func DefaultConfig() *Config {
	return &Config{
		LongPrefix:  "--",
		ShortPrefix: "-",
	}
}

// Validate checks that the prefixes can be told apart.
func (c *Config) Validate() error {
	var errs []error
	if c.LongPrefix == "" {
		errs = append(errs, errors.New("long option prefix cannot be empty"))
	}
	if c.ShortPrefix == "" {
		errs = append(errs, errors.New("short option prefix cannot be empty"))
	}
	if c.LongPrefix != "" && c.LongPrefix == c.ShortPrefix {
		errs = append(errs, fmt.Errorf("long and short option prefixes are both %q", c.LongPrefix))
	}
	for name, prefix := range map[string]string{"long": c.LongPrefix, "short": c.ShortPrefix, "flag": c.FlagPrefix} {
		if strings.ContainsAny(prefix, " \t\n") {
			errs = append(errs, fmt.Errorf("%s prefix %q contains whitespace", name, prefix))
		}
	}
	return errors.Join(errs...)
}
