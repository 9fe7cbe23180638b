package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port             string
	Timezone         string
	DBPath           string
	LogLevel         string
	EnableAuth       bool
	BenchmarksCSV    string
	CropsXLSX        string
	KBAllowedDomains []string
	KBMaxBytes       int
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) AppConfig {
	get := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}
	maxBytes, err := strconv.Atoi(get("KB_MAX_BYTES_PER_PAGE", "1500000"))
	if err != nil || maxBytes <= 0 {
		maxBytes = 1500000
	}
	var domains []string
	for _, h := range strings.Split(get("KB_ALLOWED_DOMAINS", ""), ",") {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			domains = append(domains, h)
		}
	}
	return AppConfig{
		Port:             get("PORT", "8080"),
		Timezone:         get("TZ", "Asia/Kolkata"),
		DBPath:           get("DB_PATH", "agroadvisor.db"),
		LogLevel:         get("LOG_LEVEL", "info"),
		EnableAuth:       get("ENABLE_AUTH", "false") == "true",
		BenchmarksCSV:    get("REF_BENCHMARKS_CSV", ""),
		CropsXLSX:        get("REF_CROPS_XLSX", ""),
		KBAllowedDomains: domains,
		KBMaxBytes:       maxBytes,
	}
}
