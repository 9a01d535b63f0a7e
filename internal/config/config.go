package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/esdeno/mediatype/internal/logger"
	"github.com/esdeno/mediatype/internal/mediatype"
)

type Options struct {
	Precedence mediatype.Precedence
	LogLevel   logger.LogLevel
	Color      logger.StderrColor

	// Logging stops after this many errors. Zero means no limit.
	ErrorLimit int

	// The number of specifiers classified at the same time by batch
	// operations. Zero means one per available CPU.
	Workers int
}

const DefaultErrorLimit = 10

func Default() Options {
	return Options{
		Precedence: mediatype.PreferHint,
		LogLevel:   logger.LevelInfo,
		Color:      logger.ColorIfTerminal,
		ErrorLimit: DefaultErrorLimit,
	}
}

func (options Options) EffectiveWorkers() int {
	if options.Workers > 0 {
		return options.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// This is the on-disk form. Every field is optional and fields that are
// missing keep whatever value they had before the file was applied.
type fileOptions struct {
	Precedence *string `yaml:"precedence"`
	LogLevel   *string `yaml:"logLevel"`
	Color      *bool   `yaml:"color"`
	ErrorLimit *int    `yaml:"errorLimit"`
	Workers    *int    `yaml:"workers"`
}

func (options *Options) ApplyFile(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := options.ApplyYAML(contents); err != nil {
		return fmt.Errorf("config file %q: %w", path, err)
	}
	return nil
}

func (options *Options) ApplyYAML(contents []byte) error {
	var file fileOptions
	decoder := yaml.NewDecoder(bytes.NewReader(contents))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		// An empty file is fine
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	if file.Precedence != nil {
		precedence, err := ParsePrecedence(*file.Precedence)
		if err != nil {
			return err
		}
		options.Precedence = precedence
	}

	if file.LogLevel != nil {
		level, err := ParseLogLevel(*file.LogLevel)
		if err != nil {
			return err
		}
		options.LogLevel = level
	}

	if file.Color != nil {
		if *file.Color {
			options.Color = logger.ColorAlways
		} else {
			options.Color = logger.ColorNever
		}
	}

	if file.ErrorLimit != nil {
		if *file.ErrorLimit < 0 {
			return fmt.Errorf("invalid error limit: %d", *file.ErrorLimit)
		}
		options.ErrorLimit = *file.ErrorLimit
	}

	if file.Workers != nil {
		if *file.Workers < 0 {
			return fmt.Errorf("invalid worker count: %d", *file.Workers)
		}
		options.Workers = *file.Workers
	}

	return nil
}

func ParsePrecedence(text string) (mediatype.Precedence, error) {
	switch text {
	case "hint":
		return mediatype.PreferHint, nil
	case "extension":
		return mediatype.PreferExtension, nil
	default:
		return mediatype.PreferHint, fmt.Errorf("invalid precedence: %q (valid: hint, extension)", text)
	}
}

func ParseLogLevel(text string) (logger.LogLevel, error) {
	switch text {
	case "info":
		return logger.LevelInfo, nil
	case "warning":
		return logger.LevelWarning, nil
	case "error":
		return logger.LevelError, nil
	case "silent":
		return logger.LevelSilent, nil
	default:
		return logger.LevelInfo, fmt.Errorf("invalid log level: %q (valid: info, warning, error, silent)", text)
	}
}
