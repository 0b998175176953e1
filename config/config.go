package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"plataform/pkg/apperr"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type AppConfig struct {
	Env      string
	Port     string
	Timezone string

	// Backend serving the reference lists and receiving submissions.
	// Empty in development means the in-process mock backend.
	BackendURL     string
	BackendTimeout time.Duration

	LoaderWait         time.Duration
	PageTTL            time.Duration
	SnackbarAutoHide   time.Duration
	SurfaceFetchErrors bool
	MockLatency        time.Duration

	DBEngine string // sqlite|postgres
	DBPath   string
	DBDSN    string

	LogLevel     string
	LogDir       string
	LogToConsole bool
}

// Load reads .env (if present) and the process environment.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}
	cfg := FromEnv()
	log.Printf("[cfg] %+v", cfg.redacted())
	return cfg
}

// FromEnv builds the config from the current environment only.
func FromEnv() AppConfig {
	return AppConfig{
		Env:                strings.ToLower(get("APP_ENV", EnvDevelopment)),
		Port:               get("PORT", "8080"),
		Timezone:           get("TZ", "America/Sao_Paulo"),
		BackendURL:         strings.TrimRight(get("BACKEND_URL", ""), "/"),
		BackendTimeout:     getMillis("BACKEND_TIMEOUT_MS", 10000),
		LoaderWait:         getMillis("LOADER_WAIT_MS", 1500),
		PageTTL:            time.Duration(getInt("PAGE_TTL_SEC", 1800)) * time.Second,
		SnackbarAutoHide:   getMillis("SNACKBAR_AUTOHIDE_MS", 6000),
		SurfaceFetchErrors: getBool("SURFACE_FETCH_ERRORS", false),
		MockLatency:        getMillis("MOCK_LATENCY_MS", 0),
		DBEngine:           strings.ToLower(get("DB_ENGINE", "sqlite")),
		DBPath:             get("DB_PATH", "plataform.db"),
		DBDSN:              get("DB_DSN", ""),
		LogLevel:           get("LOG_LEVEL", "info"),
		LogDir:             get("LOG_DIR", "./logs"),
		LogToConsole:       getBool("LOG_TO_CONSOLE", true),
	}
}

func (c AppConfig) IsDevelopment() bool { return c.Env == EnvDevelopment }

// UseMockBackend reports whether the in-process mock client serves the form.
func (c AppConfig) UseMockBackend() bool { return c.IsDevelopment() && c.BackendURL == "" }

// Location resolves Timezone, falling back to the local zone.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c AppConfig) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return apperr.Wrapf(apperr.ErrConfiguration, "APP_ENV %q must be %q or %q", c.Env, EnvDevelopment, EnvProduction)
	}
	if c.Env == EnvProduction && c.BackendURL == "" {
		return apperr.Wrapf(apperr.ErrConfiguration, "BACKEND_URL is required in production")
	}
	switch c.DBEngine {
	case "sqlite":
	case "postgres":
		if c.DBDSN == "" {
			return apperr.Wrapf(apperr.ErrConfiguration, "DB_DSN is required when DB_ENGINE=postgres")
		}
	default:
		return apperr.Wrapf(apperr.ErrConfiguration, "unsupported DB_ENGINE %q", c.DBEngine)
	}
	if c.SnackbarAutoHide <= 0 {
		return apperr.Wrapf(apperr.ErrConfiguration, "SNACKBAR_AUTOHIDE_MS must be positive")
	}
	return nil
}

func (c AppConfig) redacted() AppConfig {
	if c.DBDSN != "" {
		c.DBDSN = "***"
	}
	return c
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v, err := strconv.Atoi(get(k, "")); err == nil {
		return v
	}
	return def
}

func getBool(k string, def bool) bool {
	if v, err := strconv.ParseBool(get(k, "")); err == nil {
		return v
	}
	return def
}

func getMillis(k string, def int) time.Duration {
	return time.Duration(getInt(k, def)) * time.Millisecond
}
