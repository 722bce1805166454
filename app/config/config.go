package config

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type MailConfig struct {
	SendGridKey string `mapstructure:"sendgrid_key"`
	FromName    string `mapstructure:"from_name"`
	FromEmail   string `mapstructure:"from_email"`
	AdminEmail  string `mapstructure:"admin_email"`
}

type SchedulerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	RunAt   string `mapstructure:"run_at"` // HH:MM, local time
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Mail      MailConfig      `mapstructure:"mail"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Currency  string          `mapstructure:"currency"`
	LogLevel  string          `mapstructure:"log_level"`
}

var AppConfig *Config

var db *sql.DB

// Load reads configuration from config.yaml (optional) with SM_-prefixed
// environment variable overrides, e.g. SM_DATABASE_PASSWORD.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	AppConfig = &c
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "student_management")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "student-management")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("mail.from_name", "Student Management")
	v.SetDefault("mail.from_email", "")
	v.SetDefault("mail.admin_email", "")
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.run_at", "20:05")
	v.SetDefault("currency", "INR")
	v.SetDefault("log_level", "info")
}

// InitDB opens the PostgreSQL pool and verifies connectivity.
func InitDB(log *zap.Logger) error {
	if AppConfig == nil {
		return fmt.Errorf("config not loaded")
	}

	conn, err := sql.Open("postgres", AppConfig.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(AppConfig.Database.MaxOpenConns)
	conn.SetMaxIdleConns(AppConfig.Database.MaxIdleConns)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	db = conn
	log.Info("database connected",
		zap.String("host", AppConfig.Database.Host),
		zap.String("name", AppConfig.Database.Name))
	return nil
}

// GetDB returns the shared connection pool.
func GetDB() *sql.DB {
	return db
}
