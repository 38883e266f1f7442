package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port       string
	DBDSN      string
	RedisAddr  string
	CacheTTL   time.Duration
	GroqAPIKey string
	LogFile    string
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DB_DSN", "maboutique.db")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("CACHE_TTL", "10m")
	viper.SetDefault("GROQ_API_KEY", "")
	viper.SetDefault("LOG_FILE", "./maboutique.log")
	viper.AutomaticEnv()

	ttl := viper.GetDuration("CACHE_TTL")
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	cfg := Config{
		Port:       viper.GetString("PORT"),
		DBDSN:      viper.GetString("DB_DSN"),
		RedisAddr:  viper.GetString("REDIS_ADDR"),
		CacheTTL:   ttl,
		GroqAPIKey: viper.GetString("GROQ_API_KEY"),
		LogFile:    viper.GetString("LOG_FILE"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s REDIS_ADDR=%s CACHE_TTL=%s LOG_FILE=%s",
		cfg.Port, cfg.DBDSN, cfg.RedisAddr, cfg.CacheTTL, cfg.LogFile)
	return cfg
}
