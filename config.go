package main

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	GinMode      string `mapstructure:"GIN_MODE"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	SeedPath     string `mapstructure:"SEED_PATH"`
}

// LoadConfig loads configuration from config.yaml, environment variables and defaults
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("GIN_MODE", "debug") // gin.DebugMode, gin.ReleaseMode, gin.TestMode
	viper.SetDefault("DATABASE_PATH", "exam.db")
	viper.SetDefault("SEED_PATH", "data/questions.json")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("config.yaml not found, using environment variables and defaults")
		} else {
			return nil, fmt.Errorf("fatal error config file: %w", err)
		}
	}

	// Override with environment variables (e.g., IPE_SERVER_PORT)
	viper.SetEnvPrefix("IPE")
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, nil
}
