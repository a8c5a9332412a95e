package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT struct {
		SecretKey string        `mapstructure:"secret_key"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"jwt"`
	Wallet struct {
		// Starting balance bounds for new accounts, in minor units.
		MinStartingBalance int64 `mapstructure:"min_starting_balance"`
		MaxStartingBalance int64 `mapstructure:"max_starting_balance"`
	} `mapstructure:"wallet"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetDefault("jwt.token_ttl", "24h")
	viper.SetDefault("wallet.min_starting_balance", 100)
	viper.SetDefault("wallet.max_starting_balance", 1000000)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
