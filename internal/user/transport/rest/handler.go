// Package rest exposes the user record over HTTP.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocrud/internal/user/store"
	"github.com/abgdnv/gocrud/pkg/record"
	"github.com/abgdnv/gocrud/pkg/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	store  store.RecordStore
	logger *slog.Logger
}

func NewHandler(s store.RecordStore, logger *slog.Logger) *Handler {
	return &Handler{
		store:  s,
		logger: logger.With("component", "api"),
	}
}

// RegisterRoutes mounts the user endpoints on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/", h.Create)
		r.Put("/", h.Replace)
		r.Patch("/", h.Merge)
		r.Delete("/", h.Reset)
	})
	r.Get("/healthz", h.HealthCheck)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, h.store.Get(r.Context()))
}

// Create replaces the whole record, like Replace, but answers 201.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	h.logger.InfoContext(r.Context(), "User record created")
	web.RespondJSON(w, h.logger, http.StatusCreated, h.store.Replace(r.Context(), rec))
}

func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	h.logger.InfoContext(r.Context(), "User record replaced")
	web.RespondJSON(w, h.logger, http.StatusOK, h.store.Replace(r.Context(), rec))
}

func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	patch, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	h.logger.InfoContext(r.Context(), "User record updated", "fields", len(patch))
	web.RespondJSON(w, h.logger, http.StatusOK, h.store.Merge(r.Context(), patch))
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "User record reset")
	web.RespondJSON(w, h.logger, http.StatusOK, h.store.Reset(r.Context()))
}

func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request) (record.Record, bool) {
	rec, err := record.Decode(r.Body)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return rec, true
}
