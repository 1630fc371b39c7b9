package config

import (
	"os"
	"strconv"

	"github.com/spf13/viper"
)

const (
	configNameENV    = "CONFIG_NAME"
	tokenTelegramENV = "TELEGRAM_TOKEN"
	chatTelegramENV  = "TELEGRAM_CHAT_ID"
	dataDirENV       = "DATA_DIR"
)

// Config ...
type Config struct {
	Service struct {
		Host       string `mapstructure:"host"`
		PublicPort int    `mapstructure:"public_port"`
		AdminPort  int    `mapstructure:"admin_port"`
	} `mapstructure:"service"`

	Feed struct {
		IntervalMs   int    `mapstructure:"interval_ms"`
		UniverseFile string `mapstructure:"universe_file"`
	} `mapstructure:"feed"`

	Alerts struct {
		CheckIntervalMs int `mapstructure:"check_interval_ms"`
	} `mapstructure:"alerts"`

	Storage struct {
		DataDir string `mapstructure:"data_dir"`
	} `mapstructure:"storage"`

	Telegram struct {
		Token  string `mapstructure:"token"`
		ChatID int64  `mapstructure:"chat_id"`
	} `mapstructure:"telegram"`

	Jaeger struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"jaeger"`
}

func NewConfig() (*Config, error) {
	v := viper.New()

	name := os.Getenv(configNameENV)
	if name == "" {
		name = "values_local"
	}
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")

	v.SetDefault("service.host", "")
	v.SetDefault("service.public_port", 8080)
	v.SetDefault("service.admin_port", 8081)
	v.SetDefault("feed.interval_ms", 2000)
	v.SetDefault("alerts.check_interval_ms", 2000)
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("jaeger.host", "127.0.0.1")
	v.SetDefault("jaeger.port", 6831)

	if err := v.ReadInConfig(); err != nil {
		// config file is optional, defaults plus env are enough
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if token := os.Getenv(tokenTelegramENV); token != "" {
		cfg.Telegram.Token = token
	}
	if chat := os.Getenv(chatTelegramENV); chat != "" {
		if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
	if dir := os.Getenv(dataDirENV); dir != "" {
		cfg.Storage.DataDir = dir
	}

	return &cfg, nil
}
