package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName         string
	Port            string
	Env             string
	Debug           bool
	MediaDir        string
	MediaUrl        string
	LocalesDir      string
	DefaultCurrency string
	DefaultLocale   string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:         GetEnv("APP_NAME", "storefront"),
			Port:            GetEnv("PORT", "8080"),
			Env:             os.Getenv("APP_ENV"),
			Debug:           os.Getenv("DEBUG") == "true",
			MediaDir:        GetEnv("MEDIA_DIR", "media"),
			MediaUrl:        GetEnv("MEDIA_URL", "/media/"),
			LocalesDir:      GetEnv("LOCALES_DIR", "locales"),
			DefaultCurrency: GetEnv("DEFAULT_CURRENCY", "USD"),
			DefaultLocale:   GetEnv("DEFAULT_LOCALE", "en"),
		}
	})
}
