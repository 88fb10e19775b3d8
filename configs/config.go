package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogPath  string `koanf:"log_path"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	MySQL struct {
		DSN             string        `koanf:"dsn"`
		OrdersTable     string        `koanf:"orders_table"`
		MaxOpenConns    int           `koanf:"max_open_conns"`
		MaxIdleConns    int           `koanf:"max_idle_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	} `koanf:"mysql"`

	Redis struct {
		Addr      string        `koanf:"addr"`
		Password  string        `koanf:"password"`
		TokenTTL  time.Duration `koanf:"token_ttl"`
		DedupeTTL time.Duration `koanf:"dedupe_ttl"`
	} `koanf:"redis"`

	Rabbit struct {
		URL string `koanf:"url"`
	} `koanf:"rabbitmq"`

	Kafka struct {
		Brokers     []string `koanf:"brokers"`
		TopicEvents string   `koanf:"topic_events"`
	} `koanf:"kafka"`

	Security struct {
		JWTSecret     string        `koanf:"jwt_secret"`
		Issuer        string        `koanf:"issuer"`
		Audience      string        `koanf:"audience"`
		TTL           time.Duration `koanf:"ttl"`
		GatewayID     string        `koanf:"gateway_id"`
		GatewaySecret string        `koanf:"gateway_secret"`
	} `koanf:"security"`

	Shop struct {
		ApproverID  string `koanf:"approver_id"`
		UPIID       string `koanf:"upi_id"`
		UPIName     string `koanf:"upi_name"`
		SupportLink string `koanf:"support_link"`
	} `koanf:"shop"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix ORDERBOT_, nested with __)
	// e.g. ORDERBOT_MYSQL__DSN, ORDERBOT_REDIS__PASSWORD
	if err := k.Load(env.Provider("ORDERBOT_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "ORDERBOT_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn required")
	}
	if c.MySQL.OrdersTable == "" {
		return fmt.Errorf("mysql.orders_table required")
	}
	if c.Rabbit.URL == "" {
		return fmt.Errorf("rabbitmq.url required")
	}
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret required")
	}
	if c.Shop.ApproverID == "" {
		return fmt.Errorf("shop.approver_id required")
	}
	if c.Shop.UPIID == "" {
		return fmt.Errorf("shop.upi_id required")
	}
	return nil
}
