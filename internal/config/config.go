package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	GHIN     GHINConfig     `yaml:"ghin"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Upload   UploadConfig   `yaml:"upload"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ServerConfig struct {
	Port int `yaml:"port"`

	// BaseURL is the public origin, used to build the OAuth redirect URI.
	BaseURL     string   `yaml:"base_url"`
	DemoUserID  int      `yaml:"demo_user_id"`
	CORSOrigins []string `yaml:"cors_origins"`
	Seed        bool     `yaml:"seed"`
}

// DatabaseConfig selects the store. Driver is memory, sqlite or mysql.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type GHINConfig struct {
	BaseURL      string `yaml:"base_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	StateSecret  string `yaml:"state_secret"`
	TimeoutSec   int    `yaml:"timeout_sec"`
}

type OpenAIConfig struct {
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

type UploadConfig struct {
	Dir       string `yaml:"dir"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// Load reads the yaml file (explicit path or the first default that exists),
// then .env, then process environment. Later sources win.
func Load(configFile string) *Config {
	c := &Config{
		Server:   ServerConfig{Port: 5000, BaseURL: "http://localhost:5000", DemoUserID: 1, CORSOrigins: []string{"*"}, Seed: true},
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Database: DatabaseConfig{Driver: "memory", Path: "golf-coach.db", Port: 3306, Name: "golf_coach"},
		GHIN:     GHINConfig{BaseURL: "https://api.ghin.com/api/v1", TimeoutSec: 30},
		OpenAI:   OpenAIConfig{BaseURL: "https://api.openai.com", Model: "gpt-4o", TimeoutSec: 60},
		Upload:   UploadConfig{Dir: os.TempDir(), MaxSizeMB: 10},
	}

	paths := []string{"etc/config-dev.yaml", "/etc/golf-coach/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	// .env is optional; it never overrides variables already set.
	_ = godotenv.Load()

	envOverrideInt(&c.Server.Port, "PORT")
	envOverride(&c.Server.BaseURL, "APP_BASE_URL")
	envOverrideInt(&c.Server.DemoUserID, "DEMO_USER_ID")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverride(&c.Database.Driver, "DB_DRIVER")
	envOverride(&c.Database.Path, "DB_PATH")
	envOverride(&c.Database.Host, "MYSQL_HOST")
	envOverrideInt(&c.Database.Port, "MYSQL_PORT")
	envOverride(&c.Database.User, "MYSQL_USER")
	envOverride(&c.Database.Password, "MYSQL_PASS")
	envOverride(&c.Database.Name, "MYSQL_DB")
	envOverride(&c.GHIN.BaseURL, "GHIN_API_BASE_URL")
	envOverride(&c.GHIN.ClientID, "GHIN_CLIENT_ID")
	envOverride(&c.GHIN.ClientSecret, "GHIN_CLIENT_SECRET")
	envOverride(&c.GHIN.StateSecret, "OAUTH_STATE_SECRET")
	envOverride(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	envOverride(&c.OpenAI.BaseURL, "OPENAI_BASE_URL")
	envOverride(&c.OpenAI.Model, "OPENAI_MODEL")
	envOverride(&c.Upload.Dir, "UPLOAD_DIR")

	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")
	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// GHINConfigured reports whether OAuth client credentials are present.
func (c *Config) GHINConfigured() bool {
	return c.GHIN.ClientID != "" && c.GHIN.ClientSecret != ""
}

func (c *Config) GHINRedirectURI() string {
	return c.Server.BaseURL + "/api/ghin/callback"
}

func (c *Config) GHINTimeout() time.Duration   { return seconds(c.GHIN.TimeoutSec, 30) }
func (c *Config) OpenAITimeout() time.Duration { return seconds(c.OpenAI.TimeoutSec, 60) }

func (c *Config) MaxUploadBytes() int64 {
	mb := c.Upload.MaxSizeMB
	if mb <= 0 {
		mb = 10
	}
	return int64(mb) << 20
}

// OpenGormDB opens the configured SQL database. It returns nil, nil for the
// memory driver.
func (c *Config) OpenGormDB() (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	switch c.Database.Driver {
	case "", "memory":
		return nil, nil
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(c.Database.Path), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", c.Database.Path, err)
		}
		return db, nil
	case "mysql":
		cfg := gomysql.NewConfig()
		cfg.User = c.Database.User
		cfg.Passwd = c.Database.Password
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port)
		cfg.DBName = c.Database.Name
		cfg.ParseTime = true
		cfg.Loc = time.UTC

		connector, err := gomysql.NewConnector(cfg)
		if err != nil {
			return nil, fmt.Errorf("create connector: %w", err)
		}
		sqlDB := sql.OpenDB(connector)
		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("ping db: %w", err)
		}
		return gorm.Open(mysql.New(mysql.Config{Conn: sqlDB}), gcfg)
	default:
		return nil, fmt.Errorf("unknown db driver %q", c.Database.Driver)
	}
}

func seconds(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
