package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/events"

	"github.com/LLeom997/cashbookbackend/internal/docid"
	"github.com/LLeom997/cashbookbackend/resolve"
	"github.com/LLeom997/cashbookbackend/store"
)

// routeCollection matches the verb/path pair against one collection's CRUD
// operations. A nil return means the pair does not belong to this
// collection and dispatch continues.
func (h *Handler) routeCollection(ctx context.Context, col store.Collection, method, path string, req events.LambdaFunctionURLRequest) *events.LambdaFunctionURLResponse {
	prefix := "/" + col.Name

	// GET all
	if method == http.MethodGet && path == prefix {
		return h.list(ctx, col)
	}

	// GET single
	if method == http.MethodGet && strings.HasPrefix(path, prefix+"/") {
		id := strings.TrimPrefix(path, prefix+"/")
		if id == "" {
			return nil
		}
		return h.get(ctx, col, id)
	}

	// POST create
	if method == http.MethodPost && path == prefix {
		return h.create(ctx, col, req)
	}

	// PUT update
	if method == http.MethodPut && strings.HasPrefix(path, prefix+"/") {
		id := strings.TrimPrefix(path, prefix+"/")
		if id == "" {
			return nil
		}
		return h.update(ctx, col, id, req)
	}

	// DELETE
	if method == http.MethodDelete && strings.HasPrefix(path, prefix+"/") {
		id := strings.TrimPrefix(path, prefix+"/")
		if id == "" {
			return nil
		}
		return h.remove(ctx, col, id)
	}

	return nil
}

func (h *Handler) list(ctx context.Context, col store.Collection) *events.LambdaFunctionURLResponse {
	result, err := h.store.List(ctx, col)
	if err != nil {
		h.logger.Error("list failed", "collection", col.Name, "error", err)
		return ptr(respondError(http.StatusInternalServerError, err))
	}

	items := result.Items
	if items == nil {
		items = []store.Document{}
	}
	return ptr(respondJSON(http.StatusOK, Envelope{
		Success: true,
		Data:    items,
		Total:   &result.Total,
	}))
}

func (h *Handler) get(ctx context.Context, col store.Collection, id string) *events.LambdaFunctionURLResponse {
	doc, err := h.store.Get(ctx, col, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ptr(respondError(http.StatusNotFound, err))
		}
		h.logger.Error("get failed", "ref", docid.Ref(col.Name, id), "error", err)
		return ptr(respondError(http.StatusInternalServerError, err))
	}
	return ptr(respondJSON(http.StatusOK, Envelope{Success: true, Data: doc}))
}

func (h *Handler) create(ctx context.Context, col store.Collection, req events.LambdaFunctionURLRequest) *events.LambdaFunctionURLResponse {
	records, err := parseRecords(req)
	if err != nil {
		return ptr(respondError(http.StatusBadRequest, err))
	}

	var created []store.Document
	if col.Role == store.RoleChild {
		// Resolution may depend on rows committed earlier in the same
		// batch, so records go through strictly in array order.
		created, err = h.createSequential(ctx, col, records)
	} else {
		// No record depends on another; fan out.
		created, err = h.createFanOut(ctx, col, records)
	}
	if err != nil {
		var unresolved *resolve.UnresolvedError
		if errors.As(err, &unresolved) {
			h.logger.Info("relation unresolved",
				"collection", col.Name,
				"relation", unresolved.Relation,
			)
			return ptr(respondError(http.StatusBadRequest, err))
		}
		h.logger.Error("create failed", "collection", col.Name, "error", err)
		return ptr(respondError(http.StatusInternalServerError, err))
	}

	return ptr(respondJSON(http.StatusCreated, Envelope{Success: true, Data: created}))
}

// createSequential resolves and persists each record in order. The first
// failure aborts the batch; earlier records remain persisted.
func (h *Handler) createSequential(ctx context.Context, col store.Collection, records []store.Document) ([]store.Document, error) {
	created := make([]store.Document, 0, len(records))
	for _, rec := range records {
		resolved, err := h.resolver.ResolveForeignKeys(ctx, col, rec)
		if err != nil {
			return nil, err
		}
		doc, err := h.store.Create(ctx, col, resolved.ID(), resolved)
		if err != nil {
			return nil, err
		}
		created = append(created, doc)
	}
	return created, nil
}

// createFanOut persists resolution-exempt records concurrently, preserving
// input order in the result.
func (h *Handler) createFanOut(ctx context.Context, col store.Collection, records []store.Document) ([]store.Document, error) {
	created := make([]store.Document, len(records))
	errs := make(chan error, len(records))
	var wg sync.WaitGroup

	for i, rec := range records {
		wg.Add(1)
		go func(i int, rec store.Document) {
			defer wg.Done()
			doc, err := h.store.Create(ctx, col, rec.ID(), rec)
			if err != nil {
				errs <- err
				return
			}
			created[i] = doc
		}(i, rec)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return created, nil
}

func (h *Handler) update(ctx context.Context, col store.Collection, id string, req events.LambdaFunctionURLRequest) *events.LambdaFunctionURLResponse {
	record, err := parseRecord(req)
	if err != nil {
		return ptr(respondError(http.StatusBadRequest, err))
	}

	doc, err := h.store.Update(ctx, col, id, record)
	if err != nil {
		h.logger.Error("update failed", "ref", docid.Ref(col.Name, id), "error", err)
		return ptr(respondError(http.StatusInternalServerError, err))
	}
	return ptr(respondJSON(http.StatusOK, Envelope{Success: true, Data: doc}))
}

func (h *Handler) remove(ctx context.Context, col store.Collection, id string) *events.LambdaFunctionURLResponse {
	if err := h.store.Delete(ctx, col, id); err != nil {
		h.logger.Error("delete failed", "ref", docid.Ref(col.Name, id), "error", err)
		return ptr(respondError(http.StatusInternalServerError, err))
	}
	return ptr(respondJSON(http.StatusOK, Envelope{Success: true}))
}

// rawBody returns the request body bytes, decoding base64 when the
// runtime flagged it.
func rawBody(req events.LambdaFunctionURLRequest) ([]byte, error) {
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	body, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return nil, fmt.Errorf("decode request body: %w", err)
	}
	return body, nil
}

// parseRecords normalizes the request body to an array of records: a
// single object becomes a one-element batch.
func parseRecords(req events.LambdaFunctionURLRequest) ([]store.Document, error) {
	body, err := rawBody(req)
	if err != nil {
		return nil, err
	}

	var parsed interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	switch v := parsed.(type) {
	case map[string]interface{}:
		return []store.Document{store.Document(v)}, nil
	case []interface{}:
		records := make([]store.Document, 0, len(v))
		for _, el := range v {
			obj, ok := el.(map[string]interface{})
			if !ok {
				return nil, errors.New("invalid request body: array elements must be objects")
			}
			records = append(records, store.Document(obj))
		}
		return records, nil
	default:
		return nil, errors.New("invalid request body: expected object or array")
	}
}

// parseRecord parses the request body as a single object.
func parseRecord(req events.LambdaFunctionURLRequest) (store.Document, error) {
	body, err := rawBody(req)
	if err != nil {
		return nil, err
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	return store.Document(obj), nil
}

func ptr(resp events.LambdaFunctionURLResponse) *events.LambdaFunctionURLResponse {
	return &resp
}
