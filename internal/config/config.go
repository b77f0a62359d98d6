package config

import (
	"log"
	"os"
)

type Config struct {
	Port     string
	DBDSN    string
	LogLevel string
	LogFile  string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "tradepost.db"
	} // sqlite file in project root
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{Port: port, DBDSN: dsn, LogLevel: level, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_LEVEL=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.LogLevel, cfg.LogFile)
	return cfg
}
