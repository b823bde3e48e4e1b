package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr         string
	DatabaseURL      string
	CORSAllowOrigins []string

	SupabaseURL            string
	SupabaseServiceRoleKey string
	SupabaseStorageBucket  string
	PDFURLExpiry           time.Duration

	ResendAPIKey    string
	ResendFromEmail string
	NotifyEmail     string

	LogLevel  string
	LogFormat string
}

func MustLoad() Config {
	// .env is a dev convenience; absent in deployed environments.
	_ = godotenv.Load()

	return Config{
		HTTPAddr:         env("HTTP_ADDR", ":8080"),
		DatabaseURL:      mustEnv("DATABASE_URL"),
		CORSAllowOrigins: splitList(env("FRONTEND_ORIGIN", "http://localhost:5173")),

		SupabaseURL:            env("SUPABASE_URL", ""),
		SupabaseServiceRoleKey: env("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseStorageBucket:  env("SUPABASE_STORAGE_BUCKET", ""),
		PDFURLExpiry:           time.Duration(envInt("PDF_URL_EXPIRY_SECONDS", 259200)) * time.Second,

		ResendAPIKey:    env("RESEND_API_KEY", ""),
		ResendFromEmail: env("RESEND_FROM_EMAIL", "quotes@squeegee-samurai.com"),
		NotifyEmail:     env("NOTIFY_EMAIL", ""),

		LogLevel:  env("LOG_LEVEL", "info"),
		LogFormat: env("LOG_FORMAT", "json"),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid env %s: %v", k, err)
	}
	return n
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
