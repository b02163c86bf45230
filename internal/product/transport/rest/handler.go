// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"errors"
	"log/slog"
	"net/http"

	producterrors "github.com/abgdnv/gocrud/internal/product/errors"
	"github.com/abgdnv/gocrud/internal/product/service"
	"github.com/abgdnv/gocrud/pkg/record"
	"github.com/abgdnv/gocrud/pkg/web"
	"github.com/go-chi/chi/v5"
)

const (
	msgNotFound    = "Product not found"
	msgInvalidBody = "Invalid request body"
)

// ProductAPI defines HTTP handlers for product-related endpoints.
type ProductAPI interface {
	FindAll(w http.ResponseWriter, r *http.Request)
	FindByID(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	DeleteByID(w http.ResponseWriter, r *http.Request)

	HealthCheck(w http.ResponseWriter, r *http.Request)
}

type api struct {
	service service.ProductService
	logger  *slog.Logger
}

// NewAPI creates a new instance of ProductAPI with the provided service.
func NewAPI(service service.ProductService, logger *slog.Logger) ProductAPI {
	return &api{
		service: service,
		logger:  logger.With("component", "api"),
	}
}

// RegisterRoutes mounts the product endpoints on r. PUT and PATCH share the merge semantics.
func RegisterRoutes(r chi.Router, pApi ProductAPI) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", pApi.FindAll)
		r.Post("/", pApi.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", pApi.FindByID)
			r.Put("/", pApi.Update)
			r.Patch("/", pApi.Update)
			r.Delete("/", pApi.DeleteByID)
		})
	})

	r.Get("/healthz", pApi.HealthCheck)
}

// FindAll retrieves a list of all products.
func (a *api) FindAll(w http.ResponseWriter, r *http.Request) {
	list, err := a.service.FindAll(r.Context())
	if err != nil {
		a.logger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, a.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	a.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, a.logger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (a *api) FindByID(w http.ResponseWriter, r *http.Request) {
	raw, id, ok := web.PathID(r)
	if !ok {
		a.notFound(w, r, raw)
		return
	}
	found, err := a.service.FindByID(r.Context(), id)
	if err != nil {
		a.serviceError(w, r, raw, err, "Failed to retrieve product")
		return
	}
	web.RespondJSON(w, a.logger, http.StatusOK, found)
}

// Create handles the creation of a new product.
func (a *api) Create(w http.ResponseWriter, r *http.Request) {
	fields, ok := a.decodeBody(w, r)
	if !ok {
		return
	}
	created, err := a.service.Create(r.Context(), fields)
	if err != nil {
		a.logger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, a.logger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	a.logger.InfoContext(r.Context(), "Product created successfully", "ID", created["id"])
	web.RespondJSON(w, a.logger, http.StatusCreated, created)
}

// Update merges the request body into an existing product.
func (a *api) Update(w http.ResponseWriter, r *http.Request) {
	raw, id, ok := web.PathID(r)
	if !ok {
		a.notFound(w, r, raw)
		return
	}
	fields, ok := a.decodeBody(w, r)
	if !ok {
		return
	}
	updated, err := a.service.Update(r.Context(), id, fields)
	if err != nil {
		a.serviceError(w, r, raw, err, "Failed to update product")
		return
	}
	a.logger.InfoContext(r.Context(), "Product updated successfully", "ID", id)
	web.RespondJSON(w, a.logger, http.StatusOK, updated)
}

// DeleteByID removes a product and responds with the removed record.
func (a *api) DeleteByID(w http.ResponseWriter, r *http.Request) {
	raw, id, ok := web.PathID(r)
	if !ok {
		a.notFound(w, r, raw)
		return
	}
	removed, err := a.service.DeleteByID(r.Context(), id)
	if err != nil {
		a.serviceError(w, r, raw, err, "Failed to delete product")
		return
	}
	a.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondJSON(w, a.logger, http.StatusOK, removed)
}

// HealthCheck is a simple health check endpoint.
func (a *api) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decodeBody reads a JSON object from the request body and answers 400 when it is not one.
func (a *api) decodeBody(w http.ResponseWriter, r *http.Request) (record.Record, bool) {
	fields, err := record.Decode(r.Body)
	if err != nil {
		a.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, a.logger, http.StatusBadRequest, msgInvalidBody)
		return nil, false
	}
	return fields, true
}

func (a *api) notFound(w http.ResponseWriter, r *http.Request, rawID string) {
	a.logger.WarnContext(r.Context(), "Product not found", "ID", rawID)
	web.RespondText(w, http.StatusNotFound, msgNotFound)
}

func (a *api) serviceError(w http.ResponseWriter, r *http.Request, rawID string, err error, message string) {
	if errors.Is(err, producterrors.ErrProductNotFound) {
		a.notFound(w, r, rawID)
		return
	}
	a.logger.ErrorContext(r.Context(), message, "ID", rawID, "error", err)
	web.RespondError(w, a.logger, http.StatusInternalServerError, message)
}
