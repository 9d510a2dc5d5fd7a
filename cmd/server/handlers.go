package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gaogushenling/pdflayout"
)

type handler struct {
	engine pdflayout.Engine
}

func newHandler(e pdflayout.Engine) *handler {
	return &handler{engine: e}
}

// POST /parse
// Accepts {"pdf_path": "..."} and returns the layout structure of the
// document. The path is handed straight to the extraction backend: a
// missing or unreadable file surfaces as an extraction failure (500), not
// as input validation.
func (h *handler) handleParse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PDFPath string `json:"pdf_path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.PDFPath == "" {
		writeError(w, http.StatusBadRequest, "PDF path required")
		return
	}

	structure, err := h.engine.Extract(r.Context(), req.PDFPath)
	if err != nil {
		// The client gets the message; the log gets the full chain.
		writeError(w, http.StatusInternalServerError, err.Error())
		slog.Error("parse error", "path", req.PDFPath, "error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"structure": structure,
	})
}

// GET /health
// Liveness only; does not probe the extraction backend.
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": h.engine.Backend(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf("%s", msg)})
}
