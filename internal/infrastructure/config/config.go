// Package config loads meshflow settings from an optional config file, a .env
// file and MESHFLOW_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

// EnvPrefix is prepended to every environment key, e.g. MESHFLOW_STORAGE_DRIVER.
const EnvPrefix = "MESHFLOW"

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Log           LogConfig           `mapstructure:"log" json:"log"`
	Storage       StorageConfig       `mapstructure:"storage" json:"storage"`
	Serialization SerializationConfig `mapstructure:"serialization" json:"serialization"`
	Server        ServerConfig        `mapstructure:"server" json:"server"`
	Generation    GenerationConfig    `mapstructure:"generation" json:"generation"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" json:"format" validate:"oneof=text json"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver" json:"driver" validate:"oneof=memory sqlite postgres"`
	DSN    string `mapstructure:"dsn" json:"dsn" validate:"required_unless=Driver memory"`
	Table  string `mapstructure:"table" json:"table" validate:"omitempty,max=63,sql_ident"`
}

type SerializationConfig struct {
	Codec       string `mapstructure:"codec" json:"codec" validate:"oneof=json msgpack"`
	Compression string `mapstructure:"compression" json:"compression" validate:"oneof=none gzip zstd"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" json:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" json:"read_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout" validate:"min=0"`
}

type GenerationConfig struct {
	Workers int `mapstructure:"workers" json:"workers" validate:"min=1,max=1024"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log:           LogConfig{Level: "info", Format: "text"},
		Storage:       StorageConfig{Driver: DriverMemory, Table: "meshes"},
		Serialization: SerializationConfig{Codec: "msgpack", Compression: "zstd"},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Generation: GenerationConfig{Workers: runtime.NumCPU()},
	}
}

// Load reads configuration with a fresh viper instance. path may be empty.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith reads configuration through v, so callers can bind flags first.
// Variables from a .env file in the working directory are added to the
// environment first; a missing .env file is ignored and variables already
// set win.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	_ = godotenv.Load()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings against their struct rules.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.dsn", d.Storage.DSN)
	v.SetDefault("storage.table", d.Storage.Table)
	v.SetDefault("serialization.codec", d.Serialization.Codec)
	v.SetDefault("serialization.compression", d.Serialization.Compression)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("generation.workers", d.Generation.Workers)
}
