package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	GRPC    GRPCConfig    `yaml:"grpc"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Auth    AuthConfig    `yaml:"auth"`
	Booking BookingConfig `yaml:"booking"`
	SMTP    SMTPConfig    `yaml:"smtp"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// StorageConfig selects the backend holding the persisted collections.
// Driver is one of "memory", "redis" or "postgres".
type StorageConfig struct {
	Driver    string         `yaml:"driver"`
	KeyPrefix string         `yaml:"key_prefix"`
	Seed      bool           `yaml:"seed"`
	Postgres  DatabaseConfig `yaml:"postgres"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	SessionTTLHours int    `yaml:"session_ttl_hours"`
}

type BookingConfig struct {
	PaymentDelayMS         int    `yaml:"payment_delay_ms"`
	ExclusiveSlots         bool   `yaml:"exclusive_slots"`
	SlotLockTTLSeconds     int    `yaml:"slot_lock_ttl_seconds"`
	ProvidersCacheTTL      int    `yaml:"providers_cache_ttl_seconds"`
	OverduePaymentSchedule string `yaml:"overdue_payment_schedule"`
}

func (b BookingConfig) PaymentDelay() time.Duration {
	return time.Duration(b.PaymentDelayMS) * time.Millisecond
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

func LoadConfig(path string) (*Config, error) {
	// .env is optional; values already in the environment win.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "sh_"
	}
	if c.Auth.SessionTTLHours == 0 {
		c.Auth.SessionTTLHours = 24
	}
	if c.Booking.PaymentDelayMS == 0 {
		c.Booking.PaymentDelayMS = 800
	}
	if c.Booking.SlotLockTTLSeconds == 0 {
		c.Booking.SlotLockTTLSeconds = 30
	}
	if c.Booking.ProvidersCacheTTL == 0 {
		c.Booking.ProvidersCacheTTL = 60
	}
	if c.Booking.OverduePaymentSchedule == "" {
		c.Booking.OverduePaymentSchedule = "@every 1m"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
}
