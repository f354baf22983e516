package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/gorm"
)

type Config struct {
	DB *gorm.DB

	Prod_env bool

	PrivateKey string `toml:"private_key"` // admin routes access key

	Postgres struct {
		Host     string
		User     string
		Password string
		Db_name  string
		Port     uint16
		Ssl_mode string
	}

	Api struct {
		Ipv4  string
		Proto string
	} `toml:"gateway_web"`

	Webhook struct {
		MaxAttempts         int      `toml:"max_attempts"`
		TimeoutSeconds      int      `toml:"timeout_seconds"`
		PollIntervalSeconds int      `toml:"poll_interval_seconds"`
		BaseDelaySeconds    int      `toml:"base_delay_seconds"`
		MaxDelaySeconds     int      `toml:"max_delay_seconds"`
		JitterPercent       float64  `toml:"jitter_percent"`
		Workers             int      `toml:"workers"`
		BatchSize           int      `toml:"batch_size"`
		LeaseSeconds        int      `toml:"lease_seconds"`
		ProxyPath           string   `toml:"proxy_path"` // optional socks5 egress list
		ProxyList           []string `toml:"-"`
	} `toml:"webhook"`

	Qr struct {
		SweepIntervalSeconds int `toml:"sweep_interval_seconds"`
		DefaultTTLMinutes    int `toml:"default_ttl_minutes"`
	} `toml:"qr"`
}

// env overrides for secrets, so they stay out of the toml file
type envOverrides struct {
	PostgresPassword string `envconfig:"postgres_password"`
	PrivateKey       string `envconfig:"private_key"`
}

func ReadConfig() *Config {
	byte_config, err := os.ReadFile(os.Getenv("CONFIG"))
	if err != nil {
		panic(err)
	}

	var config Config
	_, err = toml.Decode(string(byte_config), &config)
	if err != nil {
		panic(err)
	}

	var env envOverrides
	if err := envconfig.Process("gateway", &env); err != nil {
		panic(err)
	}
	if env.PostgresPassword != "" {
		config.Postgres.Password = env.PostgresPassword
	}
	if env.PrivateKey != "" {
		config.PrivateKey = env.PrivateKey
	}

	if config.Webhook.ProxyPath != "" {
		config.Webhook.ProxyList = GetProxyList(config.Webhook.ProxyPath)
	}

	config.applyDefaults()

	return &config
}

func (c *Config) applyDefaults() {
	w := &c.Webhook
	if w.MaxAttempts <= 0 {
		w.MaxAttempts = 5
	}
	if w.TimeoutSeconds <= 0 {
		w.TimeoutSeconds = 10
	}
	if w.PollIntervalSeconds <= 0 {
		w.PollIntervalSeconds = 5
	}
	if w.BaseDelaySeconds <= 0 {
		w.BaseDelaySeconds = 30
	}
	if w.MaxDelaySeconds <= 0 {
		w.MaxDelaySeconds = 3600
	}
	if w.JitterPercent <= 0 {
		w.JitterPercent = 0.2
	}
	if w.Workers <= 0 {
		w.Workers = 4
	}
	if w.BatchSize <= 0 {
		w.BatchSize = 20
	}
	if w.LeaseSeconds <= 0 {
		w.LeaseSeconds = 60
	}

	q := &c.Qr
	if q.SweepIntervalSeconds <= 0 {
		q.SweepIntervalSeconds = 60
	}
	if q.DefaultTTLMinutes <= 0 {
		q.DefaultTTLMinutes = 30
	}
}

func (c *Config) WebhookTimeout() time.Duration {
	return time.Duration(c.Webhook.TimeoutSeconds) * time.Second
}

func (c *Config) WebhookPollInterval() time.Duration {
	return time.Duration(c.Webhook.PollIntervalSeconds) * time.Second
}

func (c *Config) WebhookBaseDelay() time.Duration {
	return time.Duration(c.Webhook.BaseDelaySeconds) * time.Second
}

func (c *Config) WebhookMaxDelay() time.Duration {
	return time.Duration(c.Webhook.MaxDelaySeconds) * time.Second
}

func (c *Config) WebhookLease() time.Duration {
	return time.Duration(c.Webhook.LeaseSeconds) * time.Second
}

func (c *Config) QrSweepInterval() time.Duration {
	return time.Duration(c.Qr.SweepIntervalSeconds) * time.Second
}

func (c *Config) QrDefaultTTL() time.Duration {
	return time.Duration(c.Qr.DefaultTTLMinutes) * time.Minute
}

func GetProxyList(path string) []string {
	proxyList, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var proxies []string
	for _, line := range strings.Split(string(proxyList), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			proxies = append(proxies, line)
		}
	}
	return proxies
}
