package main

import (
	"fmt"
	"io"

	"github.com/creasty/defaults"
	addrsplit "github.com/elliotwutingfeng/go-addrsplit"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/yaml.v2"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// LogConfig configures the logger
type LogConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"text"`
}

// Config main configuration
type Config struct {
	Log LogConfig                 `yaml:"log"`
	TLD addrsplit.TLDSourceParams `yaml:"tld"`
}

// loadConfig reads the YAML configuration file at path.
// If path is empty, the default configuration is returned.
func loadConfig(fsys afero.Fs, path string) (Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return cfg, fmt.Errorf("can't apply default values: %w", err)
	}
	if len(path) == 0 {
		return cfg, nil
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return cfg, fmt.Errorf("can't read config file: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("wrong file structure: %w", err)
	}
	return cfg, nil
}

// configureLog applies lc to the logger shared with the addrsplit package
func configureLog(lc LogConfig, out io.Writer) error {
	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %s: %w", lc.Level, err)
	}

	logger := addrsplit.Logger()
	logger.SetLevel(level)
	logger.SetOutput(out)

	switch lc.Format {
	case logFormatText:
		logFormatter := &prefixed.TextFormatter{
			TimestampFormat:  "2006-01-02 15:04:05",
			FullTimestamp:    true,
			ForceFormatting:  true,
			QuoteEmptyFields: true,
		}

		logFormatter.SetColorScheme(&prefixed.ColorScheme{
			PrefixStyle:    "blue+b",
			TimestampStyle: "white+h",
		})

		logger.SetFormatter(logFormatter)
	case logFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("log format should be '%s' or '%s', got '%s'", logFormatText, logFormatJSON, lc.Format)
	}
	return nil
}
