// Package gateway provides the Lambda Function URL handler dispatching
// CRUD requests across the cashbook collections.
package gateway

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/LLeom997/cashbookbackend/store"
)

// DocumentStore is the set of store primitives the router needs.
type DocumentStore interface {
	List(ctx context.Context, col store.Collection) (store.ListResult, error)
	Get(ctx context.Context, col store.Collection, id string) (store.Document, error)
	Create(ctx context.Context, col store.Collection, id string, data store.Document) (store.Document, error)
	Update(ctx context.Context, col store.Collection, id string, data store.Document) (store.Document, error)
	Delete(ctx context.Context, col store.Collection, id string) error
}

// ForeignKeyResolver fills parent foreign keys on a record before create.
type ForeignKeyResolver interface {
	ResolveForeignKeys(ctx context.Context, col store.Collection, record store.Document) (store.Document, error)
}

// Handler dispatches Function URL requests to per-collection CRUD routing.
type Handler struct {
	store    DocumentStore
	registry *store.Registry
	resolver ForeignKeyResolver
	logger   *slog.Logger
}

// NewHandler creates a new gateway handler.
func NewHandler(s DocumentStore, registry *store.Registry, resolver ForeignKeyResolver, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:    s,
		registry: registry,
		resolver: resolver,
		logger:   logger,
	}
}

// Handle processes one Function URL request to completion. Every failure
// is converted to an envelope; the returned error is always nil so the
// runtime never sees an unhandled fault.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) Handle(ctx context.Context, req events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	method := req.RequestContext.HTTP.Method
	path := req.RawPath

	// Preflight
	if method == http.MethodOptions {
		return respondText(http.StatusNoContent, ""), nil
	}

	// Health checks, intercepted before collection dispatch
	if path == "/ping" {
		return respondText(http.StatusOK, "Pong"), nil
	}
	if path == "/health" {
		return respondText(http.StatusOK, "Healthy"), nil
	}

	for _, col := range h.registry.All() {
		resp := h.routeCollection(ctx, col, method, path, req)
		if resp != nil {
			h.logger.Info("handled request",
				"method", method,
				"path", path,
				"collection", col.Name,
				"status", resp.StatusCode,
			)
			return *resp, nil
		}
	}

	h.logger.Info("unmatched request", "method", method, "path", path)
	return respondJSON(http.StatusNotFound, Envelope{
		Success: false,
		Error:   "Endpoint not found",
	}), nil
}
