package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the optional YAML config file. Pointer fields
// distinguish "absent" from zero values so the flag overlay stays correct.
//
//	output_dir: /mnt/footage/merged
//	output_name: Panorama.mp4
//	prefix: RecM0
//	extensions: [mp4, avi, mov]
//	timeout: 5m
//	log_level: info
//	color: auto
type FileConfig struct {
	OutputDir  *string  `yaml:"output_dir"`
	OutputName *string  `yaml:"output_name"`
	Overwrite  *bool    `yaml:"overwrite"`
	Prefix     *string  `yaml:"prefix"`
	Extensions []string `yaml:"extensions"`
	Timeout    *string  `yaml:"timeout"`
	LogLevel   *string  `yaml:"log_level"`
	LogFile    *string  `yaml:"log_file"`
	Color      *string  `yaml:"color"`
}

// LoadFile parses the YAML config file at path.
func LoadFile(path string) (FileConfig, error) {
	var f FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Apply overlays file values onto c. flagSet reports whether the named CLI
// flag was given explicitly; explicit flags win over file values, file
// values win over defaults.
func (f FileConfig) Apply(c *Config, flagSet func(name string) bool) error {
	if f.OutputDir != nil && !flagSet("output-dir") {
		c.OutputDir = NormalizeDirArg(*f.OutputDir)
	}
	if f.OutputName != nil && !flagSet("name") {
		c.OutputName = *f.OutputName
	}
	if f.Overwrite != nil && !flagSet("overwrite") {
		c.Overwrite = *f.Overwrite
	}
	if f.Prefix != nil && !flagSet("prefix") {
		c.Prefix = *f.Prefix
	}
	if len(f.Extensions) > 0 && !flagSet("extensions") {
		c.Extensions = f.Extensions
	}
	if f.Timeout != nil && !flagSet("timeout") {
		d, err := time.ParseDuration(*f.Timeout)
		if err != nil {
			return fmt.Errorf("config timeout: %w", err)
		}
		c.Timeout = d
	}
	if f.LogLevel != nil && !flagSet("log-level") {
		c.LogLevel = *f.LogLevel
	}
	if f.LogFile != nil && !flagSet("log-file") {
		c.LogFile = *f.LogFile
	}
	if f.Color != nil && !flagSet("color") {
		c.ColorMode = ColorMode(*f.Color)
	}
	return nil
}
