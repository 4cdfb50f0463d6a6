package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/viperadapter"
	"github.com/spf13/viper"
)

// Config contains all options of the textpress command.
type Config struct {
	// Minimum level of a trace required to be written. Options: Debug, Info, Error
	LogLevel string `mapstructure:"log_level"`
	// Write escaped tokens verbatim instead of Huffman coded.
	RawEscapes bool `mapstructure:"raw_escapes"`
	// Replace frequent phrases by n-gram codes.
	NgramPass bool `mapstructure:"ngram_pass"`

	Resources struct {
		// Frequency-ranked word list, one word per line.
		WordList string `mapstructure:"wordlist"`
		// N-gram table, one hex-encoded phrase per line.
		Ngrams string `mapstructure:"ngrams"`
		// Final Huffman table. Blank selects the built-in table.
		FinalTable string `mapstructure:"final_table"`
	} `mapstructure:"resources"`

	Layout struct {
		// First n-gram code in the low 3-byte plane.
		NgramOffset int `mapstructure:"ngram_offset"`
		// Number of codes reserved for escape selectors at the top of the high plane.
		Escapes int `mapstructure:"escapes"`
	} `mapstructure:"layout"`
}

const (
	appName      = "textpress"
	envVarPrefix = "TEXTPRESS"
)

// Filesystem locations that will be checked for a config file by default.
var defaultSearchPaths = []string{
	".",
	"$HOME/.textpress",
	"$HOME/.config/textpress",
}

func setDefaults() {
	viper.SetDefault("log_level", "Error")
	viper.SetDefault("raw_escapes", false)
	viper.SetDefault("ngram_pass", true)
	viper.SetDefault("layout.ngram_offset", 524416)
	viper.SetDefault("layout.escapes", 5)
	viper.SetDefault("tracing.adapter", "logrus")
}

// Load initializes Viper with the contents of the config file at path. With
// an empty path the default search paths are tried, and a missing file is
// not an error.
func Load(path string) (*Config, error) {
	setDefaults()
	viper.SetConfigType("yaml")
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(appName)
		for _, p := range defaultSearchPaths {
			viper.AddConfigPath(p)
		}
	}

	viper.SetEnvPrefix(envVarPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Nested options may be set through environment variables, for example
	// resources.wordlist as TEXTPRESS_RESOURCES_WORDLIST.
	for _, k := range viper.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := viper.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			return nil, fmt.Errorf("error binding %s to %s: %w", k, envVarPrefix+"_"+envVar, err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config object: %w", err)
	}
	return config, nil
}

// Set overrides a configuration value, e.g. from a command line flag.
func Set(key string, value interface{}) {
	viper.Set(key, value)
}

// Schuko exposes the loaded configuration to packages which read a
// schuko.Configuration.
func Schuko() schuko.Configuration {
	return viperadapter.New(appName)
}

// TraceLevels returns the keys configuring tracing for all tracers of the
// module, each set to the configured log level.
func (c *Config) TraceLevels() map[string]string {
	return map[string]string{
		"tracelevel.root":      c.LogLevel,
		"tracelevel.textpress": c.LogLevel,
		"tracelevel.bytepack":  c.LogLevel,
	}
}
