package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable pool_max_conns=10",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type ProviderAPI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type Currency struct {
	BaseCode     string `mapstructure:"base_code"`
	MonthlyLimit int    `mapstructure:"monthly_limit"`
}

type Scheduler struct {
	TickSeconds int    `mapstructure:"tick_seconds"`
	Timezone    string `mapstructure:"timezone"`
}

type ProfileCache struct {
	MaxItems   int64 `mapstructure:"max_items"`
	TTLSeconds int   `mapstructure:"ttl_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer   HTTPServer   `mapstructure:"http_server"`
	DbServer     DbServer     `mapstructure:"db_server"`
	HTTPClient   HTTPClient   `mapstructure:"http_client"`
	ProviderAPI  ProviderAPI  `mapstructure:"provider_api"`
	Currency     Currency     `mapstructure:"currency"`
	Scheduler    Scheduler    `mapstructure:"scheduler"`
	ProfileCache ProfileCache `mapstructure:"profile_cache"`
	Logging      Logging      `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	viper.SetDefault("db_server.max_conns", 10)
	viper.SetDefault("http_client.timeout_seconds", 10)
	viper.SetDefault("currency.base_code", "TRY")
	viper.SetDefault("currency.monthly_limit", 250)
	viper.SetDefault("scheduler.tick_seconds", 300)
	viper.SetDefault("scheduler.timezone", "Europe/Istanbul")
	viper.SetDefault("profile_cache.max_items", 1024)
	viper.SetDefault("profile_cache.ttl_seconds", 300)
	viper.SetDefault("logging.level", "info")

	// db server env vars
	_ = viper.BindEnv("db_server.host", "DB_HOST")
	_ = viper.BindEnv("db_server.port", "DB_PORT")
	_ = viper.BindEnv("db_server.user", "DB_USER")
	_ = viper.BindEnv("db_server.pass", "DB_PASS")
	_ = viper.BindEnv("db_server.name", "DB_NAME")
	_ = viper.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = viper.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// rate provider env vars
	_ = viper.BindEnv("provider_api.base_url", "PROVIDER_API_BASE_URL")
	_ = viper.BindEnv("provider_api.api_key", "PROVIDER_API_KEY")
	_ = viper.BindEnv("currency.monthly_limit", "PROVIDER_MONTHLY_LIMIT")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
