// Package resolve implements foreign-key resolution for document creation.
//
// When a caller creates a document in a child collection it may reference
// the parent by explicit id or by a human-readable name (business_name,
// book_name). The resolver fills the canonical foreign-key attributes
// before the document is persisted, and fails closed when a required
// parent cannot be determined.
package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LLeom997/cashbookbackend/store"
)

// Store is the subset of store operations resolution needs.
type Store interface {
	// FindByField returns documents matching field == value, earliest
	// created first.
	FindByField(ctx context.Context, col store.Collection, field, value string) ([]store.Document, error)

	// Get retrieves a document by id.
	Get(ctx context.Context, col store.Collection, id string) (store.Document, error)
}

// UnresolvedError reports that a required parent could not be found by id
// or by name lookup. It maps to a client error, never a store fault.
type UnresolvedError struct {
	// Relation is the singular name of the missing parent entity.
	Relation string

	// Entity is the singular name of the entity being created.
	Entity string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("Related %s not found for %s creation.", e.Relation, e.Entity)
}

// Resolver resolves parent foreign keys against the collection registry.
type Resolver struct {
	store    Store
	registry *store.Registry
	logger   *slog.Logger
}

// New creates a new Resolver.
func New(s Store, registry *store.Registry, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:    s,
		registry: registry,
		logger:   logger,
	}
}

// ResolveForeignKeys returns a copy of record with the collection's parent
// foreign keys filled in.
//
// Root and leaf collections pass through unchanged. For child collections:
// an explicit foreign key is trusted verbatim (no existence check, by
// contract); otherwise the parent is looked up by name, taking the
// earliest-created match; otherwise resolution fails with
// [*UnresolvedError]. An inherited attribute (businessId on cash_in) is
// copied from the parent best-effort when the caller did not supply it -
// the caller's value always wins.
func (r *Resolver) ResolveForeignKeys(ctx context.Context, col store.Collection, record store.Document) (store.Document, error) {
	if col.Parent == "" {
		return record, nil
	}

	parent, ok := r.registry.Describe(col.Parent)
	if !ok {
		// Registry wiring bug, not caller input.
		return nil, fmt.Errorf("resolve %s: %w: %s", col.Name, store.ErrUnknownCollection, col.Parent)
	}

	record = record.Clone()

	parentID := record.StringField(col.ParentKeyAttr)
	if parentID == "" {
		match, err := r.lookupParent(ctx, col, parent, record)
		if err != nil {
			return nil, err
		}
		parentID = match.ID()
		record[col.ParentKeyAttr] = parentID

		// The matched parent already carries everything we may need to
		// inherit; no extra fetch.
		r.inherit(col, record, match)

		// The name was a resolution directive, not document data.
		delete(record, col.LookupKeyAttr)

		r.logger.Info("resolved parent by name",
			"collection", col.Name,
			"parent", col.Parent,
			"parentId", parentID,
		)
	}

	if col.InheritAttr != "" && record.StringField(col.InheritAttr) == "" {
		r.backfillInherited(ctx, col, parent, record, parentID)
	}

	return record, nil
}

// lookupParent resolves the parent by the secondary lookup key.
func (r *Resolver) lookupParent(ctx context.Context, col, parent store.Collection, record store.Document) (store.Document, error) {
	name := record.StringField(col.LookupKeyAttr)
	if name == "" {
		return nil, &UnresolvedError{Relation: parent.Entity, Entity: col.Entity}
	}

	matches, err := r.store.FindByField(ctx, parent, parent.LookupField, name)
	if err != nil {
		return nil, fmt.Errorf("lookup %s by %s: %w", parent.Name, parent.LookupField, err)
	}
	if len(matches) == 0 {
		return nil, &UnresolvedError{Relation: parent.Entity, Entity: col.Entity}
	}

	// Earliest-created match wins on duplicate names.
	return matches[0], nil
}

// inherit copies the inherited attribute from the parent document when the
// record does not already carry one.
func (r *Resolver) inherit(col store.Collection, record store.Document, parentDoc store.Document) {
	if col.InheritAttr == "" || record.StringField(col.InheritAttr) != "" {
		return
	}
	if v := parentDoc.StringField(col.InheritAttr); v != "" {
		record[col.InheritAttr] = v
	}
}

// backfillInherited fetches the parent by its now-known id and copies the
// inherited attribute. Best-effort: a missing parent or attribute leaves
// the field absent without failing the create.
func (r *Resolver) backfillInherited(ctx context.Context, col, parent store.Collection, record store.Document, parentID string) {
	parentDoc, err := r.store.Get(ctx, parent, parentID)
	if err != nil {
		r.logger.Warn("could not fetch parent for inherited field",
			"collection", col.Name,
			"parent", col.Parent,
			"parentId", parentID,
			"field", col.InheritAttr,
			"error", err,
		)
		return
	}
	r.inherit(col, record, parentDoc)
}
