// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	API struct {
		BaseURL        string `mapstructure:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"api"`
	Storage struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"storage"`
	App struct {
		DefaultLanguage string `mapstructure:"default_language"`
		PageSize        int    `mapstructure:"page_size"`
		MinPerPage      int    `mapstructure:"min_per_page"`
		MaxPerPage      int    `mapstructure:"max_per_page"`
		NotifySeconds   int    `mapstructure:"notify_seconds"`
	} `mapstructure:"app"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Stub struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"stub"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("api.base_url", "API_BASE_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- defaults ---
	if Cfg.API.BaseURL == "" {
		Cfg.API.BaseURL = DefaultAPIBaseURL
	}
	if Cfg.API.TimeoutSeconds <= 0 {
		Cfg.API.TimeoutSeconds = DefaultAPITimeoutSecs
	}
	if Cfg.Storage.Path == "" {
		Cfg.Storage.Path = DefaultStoragePath
	}
	if Cfg.App.DefaultLanguage == "" {
		Cfg.App.DefaultLanguage = DefaultNativeLanguage
	}
	if Cfg.App.PageSize <= 0 {
		Cfg.App.PageSize = DefaultPageSize
	}
	if Cfg.App.MinPerPage <= 0 {
		Cfg.App.MinPerPage = DefaultMinPerPage
	}
	if Cfg.App.MaxPerPage < Cfg.App.MinPerPage {
		Cfg.App.MaxPerPage = DefaultMaxPerPage
	}
	if Cfg.App.PageSize < Cfg.App.MinPerPage {
		Cfg.App.PageSize = Cfg.App.MinPerPage
	}
	if Cfg.App.PageSize > Cfg.App.MaxPerPage {
		Cfg.App.PageSize = Cfg.App.MaxPerPage
	}
	if Cfg.App.NotifySeconds <= 0 {
		Cfg.App.NotifySeconds = DefaultNotifySeconds
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.Stub.Port == "" {
		Cfg.Stub.Port = DefaultStubPort
	}

	log.Println("Config loaded successfully")
	log.Printf("API base URL: %s", Cfg.API.BaseURL)
	log.Printf("Settings storage: %s", Cfg.Storage.Path)

	return nil
}
