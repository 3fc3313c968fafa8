package models

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Provider selector values for Config.PricingProvider / FallbackProvider.
const (
	ProviderMock = "mock"
	ProviderHTTP = "http"
	ProviderNone = "none"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

// ScoreWeights are the scoring coefficients. Lower score is better.
type ScoreWeights struct {
	Cost        float64 `mapstructure:"cost"`
	Spread      float64 `mapstructure:"spread"`
	TravelTime  float64 `mapstructure:"travel_time"`
	Connections float64 `mapstructure:"connections"`
}

type Config struct {
	PricingProvider     string        `mapstructure:"pricing_provider"`
	FallbackProvider    string        `mapstructure:"fallback_provider"`
	PricingBaseURL      string        `mapstructure:"pricing_base_url"`
	PriceVolatility     bool          `mapstructure:"price_volatility"`
	CacheCapacity       int           `mapstructure:"cache_capacity"`
	ProviderTimeout     time.Duration `mapstructure:"provider_timeout"`
	Workers             int           `mapstructure:"workers"`
	AllowPartialOptions bool          `mapstructure:"allow_partial_options"`

	Weights ScoreWeights `mapstructure:"score_weights"`

	DatabaseEnabled bool           `mapstructure:"database_enabled"`
	Database        DatabaseConfig `mapstructure:"database"`

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	OptionTopic     string `mapstructure:"option_topic"`
	ResultTopic     string `mapstructure:"result_topic"`

	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputDestination string             `mapstructure:"output_destination"` // local, s3
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	LogLevel string `mapstructure:"log_level"`
}

// DefaultConfig returns the engine defaults; LoadConfig overlays file and
// environment values on top of these.
func DefaultConfig() *Config {
	return &Config{
		PricingProvider:  ProviderMock,
		FallbackProvider: ProviderMock,
		CacheCapacity:    1000,
		ProviderTimeout:  30 * time.Second,
		Workers:          8,
		Weights: ScoreWeights{
			Cost:        1.0,
			Spread:      5.0,
			TravelTime:  2.0,
			Connections: 500.0,
		},
		OptionTopic:       "option_results",
		ResultTopic:       "simulation_results",
		OutputDestination: "local",
		LogLevel:          "info",
	}
}

// LoadConfig initializes and reads the configuration using Viper. A .env
// file, if present, is loaded first so viper.AutomaticEnv picks it up.
func LoadConfig(cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	config := DefaultConfig()
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			dc.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})

	if err := viper.ReadInConfig(); err != nil {
		// a missing config file is fine, defaults plus env apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (cfg *Config) Validate() error {
	switch cfg.PricingProvider {
	case ProviderMock, ProviderHTTP:
	default:
		return fmt.Errorf("unknown pricing provider %q", cfg.PricingProvider)
	}
	switch cfg.FallbackProvider {
	case ProviderMock, ProviderHTTP, ProviderNone:
	default:
		return fmt.Errorf("unknown fallback provider %q", cfg.FallbackProvider)
	}
	if cfg.PricingProvider == ProviderHTTP && cfg.PricingBaseURL == "" {
		return fmt.Errorf("pricing_base_url is required for the http provider")
	}
	if cfg.CacheCapacity <= 0 {
		return fmt.Errorf("cache_capacity must be positive, got %d", cfg.CacheCapacity)
	}
	if cfg.ProviderTimeout <= 0 {
		return fmt.Errorf("provider_timeout must be positive, got %s", cfg.ProviderTimeout)
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	}
	return nil
}
