package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the runtime settings for the import server.
type Config struct {
	Addr           string
	MaxFileSize    int64
	Workers        int
	AllowedOrigins []string
}

// Default returns the settings used when neither config.yaml nor environment
// variables override them.
func Default() Config {
	return Config{
		Addr:           ":8080",
		MaxFileSize:    10 << 20,
		Workers:        4,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

// Load reads config.yaml from configPath with environment overrides mapped
// through the IMPORT prefix (IMPORT_SERVER_ADDR, IMPORT_UPLOAD_MAX_FILE_SIZE, ...).
func Load(configPath string) (Config, error) {
	// Start with default
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv() // allow environment overrides
	v.SetEnvPrefix("IMPORT")

	v.BindEnv("server.addr")
	v.BindEnv("server.allowed_origins")
	v.BindEnv("upload.max_file_size")
	v.BindEnv("upload.workers")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Just log it, use defaults + env
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("server.addr") {
		cfg.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("upload.max_file_size") {
		cfg.MaxFileSize = v.GetInt64("upload.max_file_size")
	}
	if v.IsSet("upload.workers") {
		cfg.Workers = v.GetInt("upload.workers")
	}

	return cfg, nil
}
