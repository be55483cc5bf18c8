package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/excotide/moodify/internal/parser"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DotEnvFile is the optional dotenv file read from the working directory.
var DotEnvFile = ".env"

// Global configuration structure.
type Global struct {
	// Storage backend: file, supabase or postgres
	Store       string `mapstructure:"store" yaml:"store"`
	DataFile    string `mapstructure:"data_file" yaml:"data_file"`
	SupabaseURL string `mapstructure:"supabase_url" yaml:"supabase_url"`
	SupabaseKey string `mapstructure:"supabase_key" yaml:"supabase_key"`
	DatabaseURL string `mapstructure:"database_url" yaml:"database_url"`

	// Profile signals used to anchor the weekly window
	UserID           string `mapstructure:"user_id" yaml:"user_id"`
	AccountCreatedAt string `mapstructure:"account_created_at" yaml:"account_created_at"`
	LastLogin        string `mapstructure:"last_login" yaml:"last_login"`

	AnchorPolicy   string `mapstructure:"anchor_policy" yaml:"anchor_policy"`
	IncompleteWeek string `mapstructure:"incomplete_week" yaml:"incomplete_week"`

	HTTPTimeoutSec int    `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	LogLevel       string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat      string `mapstructure:"log_format" yaml:"log_format"`
}

// CreatedAt parses AccountCreatedAt. Empty means unknown.
func (c *Global) CreatedAt() (*time.Time, error) { return parseStamp("account_created_at", c.AccountCreatedAt) }

// LastLoginAt parses LastLogin. Empty means unknown.
func (c *Global) LastLoginAt() (*time.Time, error) { return parseStamp("last_login", c.LastLogin) }

func parseStamp(key, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parser.NormalizeTimestamp(s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &t, nil
}

// Dir returns ~/.moodify.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".moodify"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.moodify/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, dotenv and defaults.
// Precedence: env > config file > .env > defaults.
func Load(cfgFile string) (*Global, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("MOODIFY")
	v.AutomaticEnv()
	// Credentials are also accepted under their unprefixed names.
	_ = v.BindEnv("supabase_url", "MOODIFY_SUPABASE_URL", "SUPABASE_URL")
	_ = v.BindEnv("supabase_key", "MOODIFY_SUPABASE_KEY", "SUPABASE_KEY")
	_ = v.BindEnv("database_url", "MOODIFY_DATABASE_URL", "DATABASE_URL")

	// Defaults
	v.SetDefault("store", "file")
	v.SetDefault("data_file", filepath.Join(dir, "mood_data.txt"))
	v.SetDefault("supabase_url", "")
	v.SetDefault("supabase_key", "")
	v.SetDefault("database_url", "")
	v.SetDefault("user_id", "")
	v.SetDefault("account_created_at", "")
	v.SetDefault("last_login", "")
	v.SetDefault("anchor_policy", "login")
	v.SetDefault("incomplete_week", "suppress")
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")

	if err := applyDotEnv(v); err != nil {
		return nil, err
	}

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	return &c, nil
}

// applyDotEnv layers KEY=value pairs from DotEnvFile over the defaults.
func applyDotEnv(v *viper.Viper) error {
	if _, err := os.Stat(DotEnvFile); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	env := viper.New()
	env.SetConfigFile(DotEnvFile)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", DotEnvFile, err)
	}
	for _, key := range []string{"supabase_url", "supabase_key", "database_url"} {
		if env.IsSet(key) {
			v.SetDefault(key, env.GetString(key))
		}
	}
	return nil
}
