// Package config loads the organizer's settings.
//
// LAYERS (later wins):
//  1. flag defaults (the values in Default)
//  2. YAML file given by --config
//  3. environment variables: ORGANIZER_HTTP__PORT=9090 sets http.port
//  4. flags set on the command line: --http.port=9090
//
// A .env file in the working directory is read into the environment first
// by LoadDotEnv, so it behaves like layer 3.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix marks the environment variables read by Load.
const EnvPrefix = "ORGANIZER_"

type Config struct {
	HTTP    HTTPConfig    `koanf:"http"`
	DB      DBConfig      `koanf:"db"`
	Log     LogConfig     `koanf:"log"`
	Session SessionConfig `koanf:"session"`
	Seed    SeedConfig    `koanf:"seed"`
}

type HTTPConfig struct {
	Port int `koanf:"port" validate:"min=1,max=65535"`
}

type DBConfig struct {
	// Path is a file path or ":memory:".
	Path string `koanf:"path" validate:"required"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
	// File enables a rotating log file next to stdout when set.
	File string `koanf:"file"`
}

type SessionConfig struct {
	// Secret signs the flash-message cookie.
	Secret string `koanf:"secret" validate:"required"`
}

type SeedConfig struct {
	// Subjects are created on startup when the subjects table is empty.
	Subjects []string `koanf:"subjects" validate:"dive,required"`
}

// DefaultSubjects is the seed list for a new database.
var DefaultSubjects = []string{"國文", "英文", "數學", "理化", "生物", "地理", "歷史", "公民"}

func Default() Config {
	return Config{
		HTTP:    HTTPConfig{Port: 8080},
		DB:      DBConfig{Path: "data/organizer.db"},
		Log:     LogConfig{Level: "info", Format: "text"},
		Session: SessionConfig{Secret: "changeme"},
		Seed:    SeedConfig{Subjects: DefaultSubjects},
	}
}

// RegisterFlags adds every setting to fs as a dotted flag, with Default as
// the flag defaults, plus --config for the YAML file.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("config", "", "path to a YAML config file")
	fs.Int("http.port", d.HTTP.Port, "HTTP listen port")
	fs.String("db.path", d.DB.Path, "SQLite database path")
	fs.String("log.level", d.Log.Level, "log level: debug, info, warn, error")
	fs.String("log.format", d.Log.Format, "log format: text, json")
	fs.String("log.file", d.Log.File, "also write logs to this rotating file")
	fs.String("session.secret", d.Session.Secret, "flash cookie signing secret")
	fs.StringSlice("seed.subjects", d.Seed.Subjects, "subjects created in an empty database")
}

// LoadDotEnv reads path into the process environment. A missing file is not
// an error; existing variables are not overwritten.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: loading %s: %w", path, err)
	}
	return nil
}

// Load merges the layers for a flag set prepared by RegisterFlags and
// already parsed, then validates the result.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("config: reading --config: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	// Unchanged flags only fill keys no earlier layer set.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("config: loading flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps ORGANIZER_LOG__LEVEL to log.level.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
