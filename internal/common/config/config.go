// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Admin         AdminConfig        `mapstructure:"admin"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // seconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // seconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Admin / Auth Config ---

// AdminConfig carries the Basic-auth credentials that gate the admin surface.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// --- Notification Config ---

type NotificationConfig struct {
	Email EmailConfig      `mapstructure:"email"`
	Admin AdminAlertConfig `mapstructure:"admin_alert"`
}

// EmailConfig configures the confirmation email sent after each accepted
// submission. Delivery is best-effort; a failed send never fails the create.
type EmailConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	AWSRegion   string `mapstructure:"aws_region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ReplyTo     string `mapstructure:"reply_to"`
}

// AdminAlertConfig configures the optional SNS topic notified on each new
// submission.
type AdminAlertConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	TopicARN string `mapstructure:"topic_arn"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
