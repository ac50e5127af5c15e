package utils

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the services need. It is loaded once in main and
// injected into constructors; nothing reads the environment after startup.
type Config struct {
	Port              string
	UnsplashAccessKey string
	PexelsAPIKey      string
	CORSAllowOrigins  []string

	// HTTPTimeout bounds every outbound call made by the extractor, the
	// provider clients and the dead-link checker.
	HTTPTimeout time.Duration

	// MetaScanMode picks the meta-tag scanner: "pattern" (lenient regex
	// scan) or "dom" (structural parse).
	MetaScanMode string
}

// LoadConfig reads configuration from the environment (REFGALLERY_* keys),
// with an optional .env file loaded first. Missing provider keys are not
// an error here; the affected source just contributes zero results.
func LoadConfig() Config {
	// best-effort: absent .env is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("REFGALLERY")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 10)
	v.SetDefault("META_SCAN_MODE", "pattern")
	v.SetDefault("CORS_ALLOW_ORIGINS", []string{"*"})

	return Config{
		Port:              v.GetString("PORT"),
		UnsplashAccessKey: v.GetString("UNSPLASH_ACCESS_KEY"),
		PexelsAPIKey:      v.GetString("PEXELS_API_KEY"),
		CORSAllowOrigins:  v.GetStringSlice("CORS_ALLOW_ORIGINS"),
		HTTPTimeout:       time.Duration(v.GetInt("HTTP_TIMEOUT_SECONDS")) * time.Second,
		MetaScanMode:      v.GetString("META_SCAN_MODE"),
	}
}
