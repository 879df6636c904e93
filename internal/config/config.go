package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/jimmywalsh/portfolio/internal/model"
)

// EnvPrefix is prepended to every environment override, e.g. PORTFOLIO_SERVER_PORT.
const EnvPrefix = "PORTFOLIO"

type Config struct {
	SiteTitle   string          `mapstructure:"siteTitle"`
	Description string          `mapstructure:"description"`
	Intro       string          `mapstructure:"intro"`
	Author      string          `mapstructure:"author"`
	BaseURL     string          `mapstructure:"baseURL"`
	Avatar      string          `mapstructure:"avatar"`
	OutputDir   string          `mapstructure:"outputDir"`
	ContentDir  string          `mapstructure:"contentDir"`
	LayoutsDir  string          `mapstructure:"layoutsDir"`
	StaticDir   string          `mapstructure:"staticDir"`
	Navigation  []model.NavItem `mapstructure:"navigation"`
	Content     ContentConfig   `mapstructure:"content"`
	Server      ServerConfig    `mapstructure:"server"`
	Log         LogConfig       `mapstructure:"log"`
}

type ContentConfig struct {
	WordsPerMinute  int    `mapstructure:"wordsPerMinute"`
	DateFormat      string `mapstructure:"dateFormat"`
	DraftDateFormat string `mapstructure:"draftDateFormat"`
	LatestPosts     int    `mapstructure:"latestPosts"`
	BuildDrafts     bool   `mapstructure:"buildDrafts"`
}

type ServerConfig struct {
	Port            int             `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration   `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdownTimeout"`
	Debounce        time.Duration   `mapstructure:"debounce"`
	RateLimit       RateLimitConfig `mapstructure:"rateLimit"`
}

// RateLimitConfig configures the per-client token bucket. RPS 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "pretty" or "json"
}

// PostsDir is the directory the articles are loaded from.
func (c *Config) PostsDir() string {
	return filepath.Join(c.ContentDir, "posts")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("siteTitle", "James Walsh")
	v.SetDefault("description", "Articles about web development.")
	v.SetDefault("intro", "")
	v.SetDefault("author", "James Walsh")
	v.SetDefault("baseURL", "")
	v.SetDefault("avatar", "")
	v.SetDefault("outputDir", "public")
	v.SetDefault("contentDir", "content")
	v.SetDefault("layoutsDir", "layouts")
	v.SetDefault("staticDir", "static")
	v.SetDefault("navigation", []map[string]interface{}{
		{"label": "Home", "href": "/"},
		{"label": "Articles", "href": "/posts"},
	})

	v.SetDefault("content.wordsPerMinute", 200)
	v.SetDefault("content.dateFormat", "MMM dd, yyyy")
	v.SetDefault("content.draftDateFormat", "MMM dd, yy")
	v.SetDefault("content.latestPosts", 3)
	v.SetDefault("content.buildDrafts", true)

	v.SetDefault("server.port", 1313)
	v.SetDefault("server.readTimeout", 15*time.Second)
	v.SetDefault("server.writeTimeout", 15*time.Second)
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.debounce", 500*time.Millisecond)
	v.SetDefault("server.rateLimit.rps", 0)
	v.SetDefault("server.rateLimit.burst", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "pretty")
}

// Load reads config.yaml (or cfgFile when set), a local .env file and
// PORTFOLIO_* environment variables, in increasing order of precedence.
// The second result is the config file used, empty when none was found.
func Load(cfgFile string) (*Config, string, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, "", fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, used, nil
}

// Validate checks the settings the build and serve commands rely on.
func (c *Config) Validate() error {
	out := filepath.Clean(strings.TrimSpace(c.OutputDir))
	if c.OutputDir == "" || out == "." || out == string(filepath.Separator) {
		return fmt.Errorf("outputDir %q is not allowed: it is removed before every build", c.OutputDir)
	}
	if c.ContentDir == "" {
		return fmt.Errorf("contentDir is required")
	}
	if c.Content.WordsPerMinute <= 0 {
		return fmt.Errorf("content.wordsPerMinute must be positive, got %d", c.Content.WordsPerMinute)
	}
	if c.Content.LatestPosts < 0 {
		return fmt.Errorf("content.latestPosts must not be negative, got %d", c.Content.LatestPosts)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Server.RateLimit.RPS < 0 {
		return fmt.Errorf("server.rateLimit.rps must not be negative")
	}
	if c.Server.RateLimit.RPS > 0 && c.Server.RateLimit.Burst < 1 {
		return fmt.Errorf("server.rateLimit.burst must be at least 1 when rate limiting is on")
	}
	switch c.Log.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("log.format must be \"pretty\" or \"json\", got %q", c.Log.Format)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
