package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string `yaml:"listen_addr"`
	Port              string `yaml:"port"`
	GinMode           string `yaml:"gin_mode"`
	DatabaseDriver    string `yaml:"database_driver"`
	DatabasePath      string `yaml:"database_path"`
	DatabaseDSN       string `yaml:"database_dsn"`
	SessionSecret     string `yaml:"session_secret"`
	SiteName          string `yaml:"site_name"`
	SiteBaseURL       string `yaml:"site_base_url"`
	TimeZone          string `yaml:"time_zone"`
	PostsPerPage      int    `yaml:"posts_per_page"`
	SimilarPostsLimit int    `yaml:"similar_posts_limit"`
	CSRFEnabled       bool   `yaml:"csrf_enabled"`
	LambdaRuntime     bool   `yaml:"lambda_runtime"`

	Mail MailConfig `yaml:"mail"`
}

// MailConfig describes how share notifications are delivered.
type MailConfig struct {
	Backend  string `yaml:"backend"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Defaults returns the configuration used when nothing else is provided.
func Defaults() AppConfig {
	return AppConfig{
		Port:              "8080",
		GinMode:           "release",
		DatabaseDriver:    "sqlite",
		DatabasePath:      "mysite.db",
		SessionSecret:     "mysite-dev-secret",
		SiteName:          "My Blog",
		TimeZone:          "UTC",
		PostsPerPage:      3,
		SimilarPostsLimit: 4,
		CSRFEnabled:       true,
		Mail: MailConfig{
			Backend: "console",
			Port:    25,
			From:    "admin@localhost.com",
		},
	}
}

// Load 依次读取 .env、可选的 YAML 配置文件（CONFIG_FILE）以及环境变量，后者优先。
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return AppConfig{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return AppConfig{}, err
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}
	if cfg.PostsPerPage <= 0 {
		cfg.PostsPerPage = 3
	}
	if cfg.SimilarPostsLimit <= 0 {
		cfg.SimilarPostsLimit = 4
	}
	cfg.SiteBaseURL = strings.TrimRight(cfg.SiteBaseURL, "/")

	return cfg, nil
}

// Location resolves TimeZone, falling back to UTC when it is unknown.
func (c AppConfig) Location() *time.Location {
	name := strings.TrimSpace(c.TimeZone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func loadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) error {
	envString("PORT", &cfg.Port)
	envString("LISTEN_ADDR", &cfg.ListenAddr)
	envString("GIN_MODE", &cfg.GinMode)
	envString("DATABASE_DRIVER", &cfg.DatabaseDriver)
	envString("DATABASE_PATH", &cfg.DatabasePath)
	envString("DATABASE_DSN", &cfg.DatabaseDSN)
	envString("SESSION_SECRET", &cfg.SessionSecret)
	envString("SITE_NAME", &cfg.SiteName)
	envString("SITE_BASE_URL", &cfg.SiteBaseURL)
	envString("TIME_ZONE", &cfg.TimeZone)
	envString("MAIL_BACKEND", &cfg.Mail.Backend)
	envString("MAIL_HOST", &cfg.Mail.Host)
	envString("MAIL_USERNAME", &cfg.Mail.Username)
	envString("MAIL_PASSWORD", &cfg.Mail.Password)
	envString("MAIL_FROM", &cfg.Mail.From)

	if err := envInt("POSTS_PER_PAGE", &cfg.PostsPerPage); err != nil {
		return err
	}
	if err := envInt("SIMILAR_POSTS_LIMIT", &cfg.SimilarPostsLimit); err != nil {
		return err
	}
	if err := envInt("MAIL_PORT", &cfg.Mail.Port); err != nil {
		return err
	}
	if err := envBool("CSRF_ENABLED", &cfg.CSRFEnabled); err != nil {
		return err
	}
	return envBool("LAMBDA_RUNTIME", &cfg.LambdaRuntime)
}

func envString(key string, dst *string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

func envInt(key string, dst *int) error {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = parsed
	return nil
}

func envBool(key string, dst *bool) error {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = parsed
	return nil
}
