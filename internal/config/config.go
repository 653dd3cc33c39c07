// Package config provides Viper-based configuration loading for the stat engine.
package config

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds snapshot cache settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// TTL is how long a cached snapshot lives. Zero keeps it until deleted.
	TTL time.Duration `mapstructure:"ttl"`
}

// Addr returns the "host:port" address of the Redis server.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout", or a file path.
	Output string `mapstructure:"output"`
}

// ContentConfig names the YAML directory of each content kind.
type ContentConfig struct {
	Items        string `mapstructure:"items"`
	Skills       string `mapstructure:"skills"`
	Effects      string `mapstructure:"effects"`
	Stances      string `mapstructure:"stances"`
	Environments string `mapstructure:"environments"`
	Elixirs      string `mapstructure:"elixirs"`
	Books        string `mapstructure:"books"`
}

// ProgressionConfig holds the XP curve settings.
type ProgressionConfig struct {
	// BaseXPCost is the XP required to reach level 1.
	BaseXPCost float64 `mapstructure:"base_xp_cost"`
}

// CharacterConfig holds defaults for newly built characters.
type CharacterConfig struct {
	// BaseAttributes overrides entries of the default base attribute table.
	BaseAttributes map[string]float64 `mapstructure:"base_attributes"`
}

// ScriptingConfig holds Lua hook settings.
type ScriptingConfig struct {
	// ScriptDir is the directory of .lua hook files. Empty disables scripting.
	ScriptDir string `mapstructure:"script_dir"`
	// InstructionLimit caps the VM instructions of a single hook call or script file load. Zero uses the scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Content     ContentConfig     `mapstructure:"content"`
	Progression ProgressionConfig `mapstructure:"progression"`
	Character   CharacterConfig   `mapstructure:"character"`
	Scripting   ScriptingConfig   `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error joining every violation.
func (c Config) Validate() error {
	var p problems
	p.database(c.Database)
	p.redis(c.Redis)
	p.logging(c.Logging)
	if !(c.Progression.BaseXPCost > 0) {
		p.addf("progression.base_xp_cost must be > 0, got %v", c.Progression.BaseXPCost)
	}
	for _, attr := range slices.Sorted(maps.Keys(c.Character.BaseAttributes)) {
		if attr == "" {
			p.addf("character.base_attributes keys must not be empty")
		}
		if math.IsNaN(c.Character.BaseAttributes[attr]) {
			p.addf("character.base_attributes.%s must be a number", attr)
		}
	}
	if c.Scripting.InstructionLimit < 0 {
		p.addf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit)
	}
	if len(p) == 0 {
		return nil
	}
	return fmt.Errorf("configuration validation failed: %w", errors.Join(p...))
}

// problems accumulates validation failures in the order they are found.
type problems []error

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Errorf(format, args...))
}

func (p *problems) port(key string, port int) {
	if port < 1 || port > 65535 {
		p.addf("%s must be 1-65535, got %d", key, port)
	}
}

func (p *problems) oneOf(key, got string, allowed ...string) {
	if !slices.Contains(allowed, got) {
		p.addf("%s must be one of [%s], got %q", key, strings.Join(allowed, ", "), got)
	}
}

func (p *problems) database(d DatabaseConfig) {
	if d.Host == "" {
		p.addf("database.host must not be empty")
	}
	p.port("database.port", d.Port)
	if d.User == "" {
		p.addf("database.user must not be empty")
	}
	if d.Name == "" {
		p.addf("database.name must not be empty")
	}
	p.oneOf("database.sslmode", d.SSLMode, "disable", "require", "verify-ca", "verify-full")
	if d.MaxConns < 1 {
		p.addf("database.max_conns must be >= 1, got %d", d.MaxConns)
	}
	if d.MinConns < 0 {
		p.addf("database.min_conns must be >= 0, got %d", d.MinConns)
	}
	if d.MinConns > d.MaxConns {
		p.addf("database.min_conns must not exceed database.max_conns")
	}
}

func (p *problems) redis(r RedisConfig) {
	if r.Host == "" {
		p.addf("redis.host must not be empty")
	}
	p.port("redis.port", r.Port)
	if r.DB < 0 {
		p.addf("redis.db must be >= 0, got %d", r.DB)
	}
	if r.TTL < 0 {
		p.addf("redis.ttl must not be negative")
	}
}

func (p *problems) logging(l LoggingConfig) {
	p.oneOf("logging.level", l.Level, "debug", "info", "warn", "error")
	p.oneOf("logging.format", l.Format, "json", "console")
	if l.Output == "" {
		p.addf("logging.output must not be empty")
	}
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with STATS_ prefix
	v.SetEnvPrefix("STATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration built from defaults alone.
//
// Postcondition: Returns a Config that passes Validate.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("config: defaults are invalid: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "stats")
	v.SetDefault("database.password", "stats")
	v.SetDefault("database.name", "stats")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("content.items", "content/items")
	v.SetDefault("content.skills", "content/skills")
	v.SetDefault("content.effects", "content/effects")
	v.SetDefault("content.stances", "content/stances")
	v.SetDefault("content.environments", "content/environments")
	v.SetDefault("content.elixirs", "content/elixirs")
	v.SetDefault("content.books", "content/books")

	v.SetDefault("progression.base_xp_cost", 10)

	v.SetDefault("scripting.script_dir", "")
	v.SetDefault("scripting.instruction_limit", 100000)
}
