package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const (
	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "WARN"
)

// Config is used to configure the sbool CLI.
type Config struct {
	// LogLevel is the level with which to log for this config.
	LogLevel *string `mapstructure:"log_level"`

	// Syslog is the configuration for syslog.
	Syslog *SyslogConfig `mapstructure:"syslog"`

	// LogFile is the configuration for the rotating log file.
	LogFile *LogFileConfig `mapstructure:"log_file"`

	// Telemetry is the configuration for go-metrics.
	Telemetry *TelemetryConfig `mapstructure:"telemetry"`

	// Flags is the list of named booleans available to expressions.
	Flags *FlagConfigs `mapstructure:"flag"`
}

// Copy returns a deep copy of the current configuration. This is useful because
// the nested data structures may be shared.
func (c *Config) Copy() *Config {
	if c == nil {
		return nil
	}

	var o Config

	o.LogLevel = StringCopy(c.LogLevel)

	if c.Syslog != nil {
		o.Syslog = c.Syslog.Copy()
	}

	if c.LogFile != nil {
		o.LogFile = c.LogFile.Copy()
	}

	if c.Telemetry != nil {
		o.Telemetry = c.Telemetry.Copy()
	}

	if c.Flags != nil {
		o.Flags = c.Flags.Copy()
	}

	return &o
}

// Merge merges the values in config into this config object. Values in the
// config object overwrite the values in c.
func (c *Config) Merge(o *Config) *Config {
	if c == nil {
		if o == nil {
			return nil
		}
		return o.Copy()
	}

	if o == nil {
		return c.Copy()
	}

	r := c.Copy()

	if o.LogLevel != nil {
		r.LogLevel = o.LogLevel
	}

	if o.Syslog != nil {
		r.Syslog = r.Syslog.Merge(o.Syslog)
	}

	if o.LogFile != nil {
		r.LogFile = r.LogFile.Merge(o.LogFile)
	}

	if o.Telemetry != nil {
		r.Telemetry = r.Telemetry.Merge(o.Telemetry)
	}

	if o.Flags != nil {
		r.Flags = r.Flags.Merge(o.Flags)
	}

	return r
}

// Parse parses the given string contents as HCL or JSON.
func Parse(s string) (*Config, error) {
	return ParseFormat(s, FormatHCL)
}

// ParseFormat parses the given string contents in the given format.
func ParseFormat(s string, format Format) (*Config, error) {
	parsed, err := format.decode(s)
	if err != nil {
		return nil, err
	}

	// Flatten the single-block stanzas; hcl decodes every block as a list.
	flattenKeys(parsed, []string{
		"syslog",
		"log_file",
		"telemetry",
	})

	// Create a new, empty config
	var c Config

	// Use mapstructure to populate the basic config fields
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			ValueToBoolFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		ErrorUnused: true,
		Metadata:    &md,
		Result:      &c,
	})
	if err != nil {
		return nil, errors.Wrap(err, "mapstructure decoder creation failed")
	}
	if err := decoder.Decode(parsed); err != nil {
		return nil, errors.Wrap(err, "mapstructure decode failed")
	}

	return &c, nil
}

// Must returns a config object that must compile. If there are any errors, this
// function will panic. This is most useful in testing or constants.
func Must(s string) *Config {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// TestConfig returns a default, finalized config, with the provided
// configuration taking precedence.
func TestConfig(c *Config) *Config {
	d := DefaultConfig().Merge(c)
	d.Finalize()
	return d
}

// FromFile reads the configuration file at the given path and returns a new
// Config struct with the data populated. The format is chosen by extension.
func FromFile(path string) (*Config, error) {
	c, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "from file: "+path)
	}

	config, err := ParseFormat(string(c), FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrap(err, "from file: "+path)
	}
	return config, nil
}

// FromPath iterates and merges all configuration files in a given
// directory, returning the resulting config. A leading ~ is expanded to the
// home directory.
func FromPath(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path: "+path)
	}

	// Ensure the given filepath exists
	stat, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(err, "missing file/folder: "+path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed stating file: "+path)
	}

	// Recursively parse directories, single load files
	if stat.Mode().IsDir() {
		// Ensure the given filepath has at least one config file
		if _, err := ioutil.ReadDir(path); err != nil {
			return nil, errors.Wrap(err, "failed listing dir: "+path)
		}

		// Create a blank config to merge off of
		var c *Config

		// Potential bug: Walk does not follow symlinks!
		err = filepath.Walk(path, func(path string, info os.FileInfo, err error) error {
			// If WalkFunc had an error, just return it
			if err != nil {
				return err
			}

			// Do nothing for directories
			if info.IsDir() {
				return nil
			}

			// Parse and merge the config
			newConfig, err := FromFile(path)
			if err != nil {
				return err
			}
			c = c.Merge(newConfig)

			return nil
		})

		if err != nil {
			return nil, errors.Wrap(err, "walk error")
		}

		return c, nil
	} else if stat.Mode().IsRegular() {
		return FromFile(path)
	}

	return nil, fmt.Errorf("unknown filetype: %q", stat.Mode().String())
}

// GoString defines the printable version of this struct.
func (c *Config) GoString() string {
	if c == nil {
		return "(*Config)(nil)"
	}

	return fmt.Sprintf("&Config{"+
		"LogLevel:%s, "+
		"Syslog:%#v, "+
		"LogFile:%#v, "+
		"Telemetry:%#v, "+
		"Flags:%#v"+
		"}",
		StringGoString(c.LogLevel),
		c.Syslog,
		c.LogFile,
		c.Telemetry,
		c.Flags,
	)
}

// DefaultConfig returns the default configuration struct. Certain
// environment variables may be set which control the values for the default
// configuration.
func DefaultConfig() *Config {
	return &Config{
		Syslog:    DefaultSyslogConfig(),
		LogFile:   DefaultLogFileConfig(),
		Telemetry: DefaultTelemetryConfig(),
		Flags:     DefaultFlagConfigs(),
	}
}

// Finalize ensures all configuration options have the default values, so it
// is safe to dereference the pointers later down the line. It also
// intelligently tries to activate stanzas that should be "enabled" because
// data was given, but the user did not explicitly add "Enabled: true" to the
// configuration.
func (c *Config) Finalize() {
	if c == nil {
		return
	}

	if c.LogLevel == nil {
		c.LogLevel = stringFromEnv([]string{
			"SBOOL_LOG",
		}, DefaultLogLevel)
	}

	if c.Syslog == nil {
		c.Syslog = DefaultSyslogConfig()
	}
	c.Syslog.Finalize()

	if c.LogFile == nil {
		c.LogFile = DefaultLogFileConfig()
	}
	c.LogFile.Finalize()

	if c.Telemetry == nil {
		c.Telemetry = DefaultTelemetryConfig()
	}
	c.Telemetry.Finalize()

	if c.Flags == nil {
		c.Flags = DefaultFlagConfigs()
	}
	c.Flags.Finalize()
}

// Validate checks the finalized configuration, returning every problem found.
// The log level is checked when logging is set up.
func (c *Config) Validate() error {
	var errs *multierror.Error

	if c.LogFile != nil {
		if n := IntVal(c.LogFile.LogRotateMaxFiles); n < -1 {
			errs = multierror.Append(errs, fmt.Errorf("log_file: invalid log_rotate_max_files %d", n))
		}
	}

	if c.Flags != nil {
		seen := make(map[string]struct{}, len(*c.Flags))
		for i, f := range *c.Flags {
			if f == nil {
				continue
			}
			name := StringVal(f.Name)
			if name == "" {
				errs = multierror.Append(errs, fmt.Errorf("flag[%d]: missing name", i))
				continue
			}
			if _, ok := seen[name]; ok {
				errs = multierror.Append(errs, fmt.Errorf("flag[%d]: duplicate name %q", i, name))
			}
			seen[name] = struct{}{}

			if _, err := f.FlavorKey(); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}

	return errs.ErrorOrNil()
}

// FlagNames returns the sorted names of the configured flags.
func (c *Config) FlagNames() []string {
	if c == nil || c.Flags == nil {
		return nil
	}

	names := make([]string, 0, len(*c.Flags))
	for _, f := range *c.Flags {
		names = append(names, StringVal(f.Name))
	}
	sort.Strings(names)
	return names
}

func stringFromEnv(list []string, def string) *string {
	for _, s := range list {
		if v := os.Getenv(s); v != "" {
			return String(strings.TrimSpace(v))
		}
	}
	return String(def)
}

// flattenKeys is a function that takes a map[string]interface{} and recursively
// flattens any keys that are a []map[string]interface{} where the key is in the
// given list of keys.
func flattenKeys(m map[string]interface{}, keys []string) {
	keyMap := make(map[string]struct{})
	for _, key := range keys {
		keyMap[key] = struct{}{}
	}

	var flatten func(map[string]interface{}, string)
	flatten = func(m map[string]interface{}, parent string) {
		for k, v := range m {
			// Calculate the map key, since it could include a parent.
			mapKey := k
			if parent != "" {
				mapKey = parent + "." + k
			}

			if _, ok := keyMap[mapKey]; !ok {
				continue
			}

			switch typed := v.(type) {
			case []map[string]interface{}:
				if len(typed) > 0 {
					last := typed[len(typed)-1]
					flatten(last, mapKey)
					m[k] = last
				} else {
					m[k] = nil
				}
			case map[string]interface{}:
				flatten(typed, mapKey)
				m[k] = typed
			default:
				m[k] = v
			}
		}
	}

	flatten(m, "")
}
