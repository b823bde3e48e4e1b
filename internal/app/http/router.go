package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"squeegee-samurai/go_backend/internal/app/config"
	"squeegee-samurai/go_backend/internal/app/http/handlers"
	"squeegee-samurai/go_backend/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, log *zap.Logger, h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(log))
	r.Use(middleware.CORS(cfg.CORSAllowOrigins))
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/api/health", h.Health)
	r.Get("/api/pricing/commercial", h.CommercialPricing)
	r.Get("/api/test-pdf", h.TestPDF)

	r.Post("/api/quote", h.CreateQuote)
	r.Post("/api-serverless/quote", h.CreateQuoteServerless)

	return r
}
