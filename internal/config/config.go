package config

import (
	"fmt"
	"log"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	HashString = "string"
	HashSeeded = "seeded"

	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

type Table struct {
	Capacity    int     `yaml:"capacity" env:"TABLE_CAPACITY" env-default:"4"`
	Threshold   float64 `yaml:"threshold" env:"TABLE_THRESHOLD" env-default:"0.75"`
	Hash        string  `yaml:"hash" env:"TABLE_HASH" env-default:"string"`
	FullRecount bool    `yaml:"full_recount" env:"TABLE_FULL_RECOUNT" env-default:"false"`
}

type Config struct {
	LogLevel string   `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	Format   string   `yaml:"format" env:"OUTPUT_FORMAT" env-default:"text"`
	Table    Table    `yaml:"table"`
	Values   []string `yaml:"values" env:"TABLE_VALUES" env-separator:"," env-default:"Java,Python,Lisp,Fortran,Prolog,Cobol,C++,C,C#"`
}

// Load reads the configuration from configPath, or from the environment
// alone when configPath is empty, and validates it.
func Load(configPath string) (Config, error) {
	var cfg Config
	var err error
	if configPath == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(configPath, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config %q: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func MustLoad(configPath string) Config {
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%s", err)
	}
	return cfg
}

func (c Config) Validate() error {
	if c.Table.Capacity <= 0 {
		return fmt.Errorf("%w: %d", ErrBadCapacity, c.Table.Capacity)
	}
	if !(c.Table.Threshold > 0 && c.Table.Threshold <= 1) {
		return fmt.Errorf("%w: %v", ErrBadThreshold, c.Table.Threshold)
	}
	switch c.Table.Hash {
	case HashString, HashSeeded:
	default:
		return fmt.Errorf("%w: %q", ErrBadHash, c.Table.Hash)
	}
	switch c.Format {
	case FormatText, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrBadFormat, c.Format)
	}
	switch c.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("%w: %q", ErrBadLogLevel, c.LogLevel)
	}
	return nil
}
