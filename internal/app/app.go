package app

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"squeegee-samurai/go_backend/internal/app/config"
	apphttp "squeegee-samurai/go_backend/internal/app/http"
	"squeegee-samurai/go_backend/internal/app/http/handlers"
	"squeegee-samurai/go_backend/internal/app/logger"
	"squeegee-samurai/go_backend/internal/domain/quote/flow"
	pdfgen "squeegee-samurai/go_backend/internal/domain/quote/pdf/gofpdf"
	"squeegee-samurai/go_backend/internal/infra/db/postgres"
	"squeegee-samurai/go_backend/internal/infra/email/resend"
	"squeegee-samurai/go_backend/internal/infra/storage/supabase"
)

func Run() {
	cfg := config.MustLoad()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	db, err := postgres.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db", zap.Error(err))
	}
	defer db.Close()

	mailer := resend.New(cfg.ResendAPIKey, cfg.ResendFromEmail, cfg.NotifyEmail, log)
	renderer := pdfgen.New()

	api := &flow.Orchestrator{Store: db, Mailer: mailer, Log: log}
	serverless := &flow.Orchestrator{Store: db, Mailer: mailer, Log: log, URLTTL: cfg.PDFURLExpiry}

	if cfg.SupabaseURL != "" && cfg.SupabaseServiceRoleKey != "" && cfg.SupabaseStorageBucket != "" {
		serverless.Renderer = renderer
		serverless.Objects = supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.SupabaseStorageBucket, nil)
	} else {
		log.Warn("supabase storage not configured; pdf delivery disabled")
	}

	h := handlers.New(log, api, serverless, renderer)
	router := apphttp.NewRouter(cfg, log, h)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}
