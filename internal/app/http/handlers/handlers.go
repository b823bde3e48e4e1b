package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"squeegee-samurai/go_backend/internal/domain/quote/flow"
	"squeegee-samurai/go_backend/internal/domain/quote/pdf"
)

type Handlers struct {
	Log *zap.Logger

	// API handles /api/quote: no document tail, owner notification only.
	// Serverless handles /api-serverless/quote with the full PDF pipeline.
	API        *flow.Orchestrator
	Serverless *flow.Orchestrator

	Renderer pdf.Generator
}

func New(log *zap.Logger, api, serverless *flow.Orchestrator, renderer pdf.Generator) *Handlers {
	return &Handlers{Log: log, API: api, Serverless: serverless, Renderer: renderer}
}

type apiError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// MethodNotAllowed is the router's fallback for unsupported methods.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, apiError{Success: false, Error: "Method not allowed"})
}
