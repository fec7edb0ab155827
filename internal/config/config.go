package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds static process configuration. Operational settings that an
// administrator changes at runtime (thresholds, capacities, delivery toggles)
// live in the settings store, not here.
type Config struct {
	HTTPAddr string `mapstructure:"http_addr"`
	Debug    bool   `mapstructure:"debug"`

	// DatabaseURL is a postgres DSN, or a sqlite file path when it has no
	// scheme (used by local development and tests).
	DatabaseURL string `mapstructure:"database_url"`

	NotifyInterval          time.Duration `mapstructure:"notify_interval"`
	CapacityRefreshInterval time.Duration `mapstructure:"capacity_refresh_interval"`

	// Delivery transport endpoints. Whether delivery is attempted at all is
	// an operational setting; these only say where to send.
	SMTPHost      string `mapstructure:"smtp_host"`
	SMTPPort      int    `mapstructure:"smtp_port"`
	SMTPUser      string `mapstructure:"smtp_user"`
	SMTPPassword  string `mapstructure:"smtp_password"`
	SMTPFrom      string `mapstructure:"smtp_from"`
	SMSGatewayURL string `mapstructure:"sms_gateway_url"`
	SMSGatewayKey string `mapstructure:"sms_gateway_key"`

	DispatchTimeout time.Duration `mapstructure:"dispatch_timeout"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("debug", false)
	v.SetDefault("database_url", "parking.db")
	v.SetDefault("notify_interval", time.Minute)
	v.SetDefault("capacity_refresh_interval", 30*time.Second)
	v.SetDefault("smtp_port", 587)
	v.SetDefault("dispatch_timeout", 10*time.Second)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
