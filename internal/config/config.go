package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ignite/jobmailer/internal/domain"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Mailer  MailerConfig  `yaml:"mailer"`
	Sending SendingConfig `yaml:"sending"`
	Sender  SenderConfig  `yaml:"sender"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// StorageConfig selects the document store backend.
type StorageConfig struct {
	// Type is one of "memory", "local", "redis".
	Type      string `yaml:"type"`
	LocalPath string `yaml:"local_path"`
	RedisURL  string `yaml:"redis_url"`
	KeyPrefix string `yaml:"key_prefix"`

	// Blob settings for attachment content. Backend is "inline" or "s3".
	BlobBackend string `yaml:"blob_backend"`
	S3Bucket    string `yaml:"s3_bucket"`
	S3Region    string `yaml:"s3_region"`
	AWSProfile  string `yaml:"aws_profile"`
}

// MailerConfig selects the outbound transport.
type MailerConfig struct {
	// Provider is "simulated" or "ses".
	Provider string `yaml:"provider"`

	// SimulatedDelayMS is the artificial per-send latency of the
	// simulated provider.
	SimulatedDelayMS int `yaml:"simulated_delay_ms"`

	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
}

// SendingConfig bounds per-recipient dispatch during a batch send.
type SendingConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxRetries     int `yaml:"max_retries"`
	BackoffMS      int `yaml:"backoff_ms"`
}

// SenderConfig is the applicant's own identity, merged into outgoing
// mail as the your_* variables.
type SenderConfig struct {
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	Role      string `yaml:"role"`
	LinkedIn  string `yaml:"linkedin"`
	Portfolio string `yaml:"portfolio"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level     string `yaml:"level"`
	RedactPII *bool  `yaml:"redact_pii"`
}

// Timeout returns the per-attempt send timeout.
func (s SendingConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Backoff returns the initial retry backoff.
func (s SendingConfig) Backoff() time.Duration {
	return time.Duration(s.BackoffMS) * time.Millisecond
}

// SenderDetails converts the config into the domain type.
func (s SenderConfig) SenderDetails() domain.SenderDetails {
	return domain.SenderDetails{
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Role:      s.Role,
		LinkedIn:  s.LinkedIn,
		Portfolio: s.Portfolio,
	}
}

// Load reads configuration from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the YAML file if present, then overrides from the
// environment (.env is honored via godotenv). Works with no file at
// all, so a bare `JOBMAILER_SENDER_EMAIL=... ./server` run is enough.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
		}
		cfg.Server.Port = p
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = strings.Split(origins, ",")
	}

	if t := os.Getenv("STORAGE_TYPE"); t != "" {
		cfg.Storage.Type = t
	}
	if p := os.Getenv("STORAGE_LOCAL_PATH"); p != "" {
		cfg.Storage.LocalPath = p
	}
	if u := os.Getenv("REDIS_URL"); u != "" {
		cfg.Storage.RedisURL = u
	}
	if b := os.Getenv("BLOB_BACKEND"); b != "" {
		cfg.Storage.BlobBackend = b
	}
	if b := os.Getenv("S3_BUCKET"); b != "" {
		cfg.Storage.S3Bucket = b
	}
	if r := os.Getenv("S3_REGION"); r != "" {
		cfg.Storage.S3Region = r
	}

	if p := os.Getenv("MAILER_PROVIDER"); p != "" {
		cfg.Mailer.Provider = p
	}
	if k := os.Getenv("AWS_SES_ACCESS_KEY"); k != "" {
		cfg.Mailer.AccessKey = k
	}
	if k := os.Getenv("AWS_SES_SECRET_KEY"); k != "" {
		cfg.Mailer.SecretKey = k
	}
	if r := os.Getenv("AWS_SES_REGION"); r != "" {
		cfg.Mailer.Region = r
	}

	if n := os.Getenv("JOBMAILER_SENDER_NAME"); n != "" {
		cfg.Sender.Name = n
	}
	if e := os.Getenv("JOBMAILER_SENDER_EMAIL"); e != "" {
		cfg.Sender.Email = e
	}
	if p := os.Getenv("JOBMAILER_SENDER_PHONE"); p != "" {
		cfg.Sender.Phone = p
	}
	if r := os.Getenv("JOBMAILER_SENDER_ROLE"); r != "" {
		cfg.Sender.Role = r
	}
	if l := os.Getenv("JOBMAILER_SENDER_LINKEDIN"); l != "" {
		cfg.Sender.LinkedIn = l
	}

	if l := os.Getenv("LOG_LEVEL"); l != "" {
		cfg.Log.Level = l
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}

	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = "./data"
	}
	if cfg.Storage.KeyPrefix == "" {
		cfg.Storage.KeyPrefix = "jobmailer"
	}
	if cfg.Storage.BlobBackend == "" {
		cfg.Storage.BlobBackend = "inline"
	}
	if cfg.Storage.S3Region == "" {
		cfg.Storage.S3Region = "us-east-1"
	}

	if cfg.Mailer.Provider == "" {
		cfg.Mailer.Provider = "simulated"
	}
	if cfg.Mailer.Region == "" {
		cfg.Mailer.Region = "us-east-1"
	}

	if cfg.Sending.TimeoutSeconds == 0 {
		cfg.Sending.TimeoutSeconds = 30
	}
	if cfg.Sending.MaxRetries == 0 {
		cfg.Sending.MaxRetries = 2
	}
	if cfg.Sending.BackoffMS == 0 {
		cfg.Sending.BackoffMS = 500
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func validate(cfg *Config) error {
	switch cfg.Storage.Type {
	case "memory", "local", "redis":
	default:
		return fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
	if cfg.Storage.Type == "redis" && cfg.Storage.RedisURL == "" {
		return fmt.Errorf("storage type redis requires redis_url")
	}

	switch cfg.Storage.BlobBackend {
	case "inline", "s3":
	default:
		return fmt.Errorf("unknown blob backend %q", cfg.Storage.BlobBackend)
	}
	if cfg.Storage.BlobBackend == "s3" && cfg.Storage.S3Bucket == "" {
		return fmt.Errorf("blob backend s3 requires s3_bucket")
	}

	switch cfg.Mailer.Provider {
	case "simulated", "ses":
	default:
		return fmt.Errorf("unknown mailer provider %q", cfg.Mailer.Provider)
	}
	if cfg.Mailer.Provider == "ses" && cfg.Sender.Email == "" {
		return fmt.Errorf("mailer provider ses requires a sender email")
	}
	return nil
}
