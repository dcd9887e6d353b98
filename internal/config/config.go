package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	Server struct {
		Address        string        `yaml:"address"`
		ReadTimeout    time.Duration `yaml:"read_timeout"`
		WriteTimeout   time.Duration `yaml:"write_timeout"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"server"`
	Database struct {
		Driver       string `yaml:"driver"`
		URL          string `yaml:"url"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`
	Auth struct {
		SigningKey string `yaml:"signing_key"`
	} `yaml:"auth"`
	Mail struct {
		Driver string `yaml:"driver"`
		From   string `yaml:"from"`
	} `yaml:"mail"`
	Storage struct {
		Driver string `yaml:"driver"`
		Dir    string `yaml:"dir"`
		Bucket string `yaml:"bucket"`
		Prefix string `yaml:"prefix"`
	} `yaml:"storage"`
	Notifications struct {
		Concurrency int `yaml:"concurrency"`
	} `yaml:"notifications"`
	// Redis is optional; when set, availability events are relayed between instances.
	Redis struct {
		URL     string `yaml:"url"`
		Channel string `yaml:"channel"`
	} `yaml:"redis"`
	AWS AWSConfig `yaml:"aws"`
}

type AWSConfig struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// LoadConfig reads the YAML file at path, then applies environment overrides
// and defaults. A missing file is not an error so that env-only deployments work.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Address = ":" + strings.TrimPrefix(v, ":")
	}
	setString(&c.Database.Driver, "DATABASE_DRIVER")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Auth.SigningKey, "JWT_SIGNING_KEY")
	setString(&c.Mail.Driver, "MAIL_DRIVER")
	setString(&c.Mail.From, "MAIL_FROM")
	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.Dir, "STORAGE_DIR")
	setString(&c.Storage.Bucket, "STORAGE_BUCKET")
	setString(&c.Redis.URL, "REDIS_URL")
	setString(&c.AWS.Region, "AWS_REGION")
	setString(&c.AWS.Endpoint, "AWS_ENDPOINT")
	setString(&c.AWS.AccessKey, "AWS_ACCESS_KEY_ID")
	setString(&c.AWS.SecretKey, "AWS_SECRET_ACCESS_KEY")

	if v := os.Getenv("NOTIFY_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse NOTIFY_CONCURRENCY: %w", err)
		}
		c.Notifications.Concurrency = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":5100"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 35
	}
	if c.Mail.Driver == "" {
		c.Mail.Driver = "log"
	}
	if c.Mail.From == "" {
		c.Mail.From = "no-reply@sharedesk.local"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "local"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "uploads/spaces"
	}
	if c.Storage.Prefix == "" {
		c.Storage.Prefix = "spaces"
	}
	if c.AWS.Region == "" {
		c.AWS.Region = "us-east-1"
	}
	if c.Notifications.Concurrency <= 0 {
		c.Notifications.Concurrency = 4
	}
}

func (c Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("config: database.url is required")
	}
	switch c.Database.Driver {
	case "mysql", "pgx":
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	switch c.Mail.Driver {
	case "log", "ses":
	default:
		return fmt.Errorf("config: unsupported mail driver %q", c.Mail.Driver)
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" {
			return errors.New("config: storage.bucket is required for s3")
		}
	default:
		return fmt.Errorf("config: unsupported storage driver %q", c.Storage.Driver)
	}
	return nil
}
