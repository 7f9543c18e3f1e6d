package store

// Role is a collection's position in the parent/child reference chain.
type Role int

const (
	// RoleRoot is a collection with no parent (business).
	RoleRoot Role = iota

	// RoleChild is a collection whose documents must reference a parent
	// document before they are persisted (books, cash_in).
	RoleChild

	// RoleLeaf is a collection with no enforced parent reference (cash_out).
	RoleLeaf
)

// Collection describes one logical collection in the hierarchy.
type Collection struct {
	// Name is the logical collection name, also the URL path prefix
	// (e.g., "books").
	Name string

	// Entity is the singular entity name used in error messages
	// (e.g., "book").
	Entity string

	// Table is the physical DynamoDB table name.
	Table string

	// Role is the collection's hierarchy role.
	Role Role

	// Parent is the logical name of the parent collection, or "" for
	// root and leaf collections.
	Parent string

	// ParentKeyAttr is the attribute on a document of this collection
	// that references its parent (e.g., "businessId").
	ParentKeyAttr string

	// LookupKeyAttr is the attribute a caller may supply instead of
	// ParentKeyAttr to have the parent resolved by name
	// (e.g., "business_name").
	LookupKeyAttr string

	// LookupField is the attribute on the parent matched against the
	// LookupKeyAttr value (e.g., "name").
	LookupField string

	// InheritAttr is an attribute copied from the resolved parent onto
	// the document when the caller did not supply it ("" when nothing
	// is inherited). cash_in inherits "businessId" from its book.
	InheritAttr string
}

// Registry holds the ordered set of known collections.
// Static, built once at startup, immutable afterwards.
type Registry struct {
	ordered []Collection
	byName  map[string]Collection
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Collection),
	}
}

// Register adds a collection to the registry. Registration order is the
// dispatch order; collections sharing a path prefix must be registered
// longest-prefix first.
func (r *Registry) Register(c Collection) {
	r.ordered = append(r.ordered, c)
	r.byName[c.Name] = c
}

// Describe returns the collection registered under the logical name.
// An unknown name means "not handled by this store", never a fault.
func (r *Registry) Describe(name string) (Collection, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// All returns the collections in registration order.
func (r *Registry) All() []Collection {
	return r.ordered
}

// DefaultRegistry builds the cashbook hierarchy from cfg:
// business (root) -> books -> cash_in, with cash_out as an
// unparented leaf.
func DefaultRegistry(cfg Config) *Registry {
	r := NewRegistry()
	r.Register(Collection{
		Name:   "cash_in",
		Entity: "cash-in entry",
		Table:  cfg.CashInTable,
		Role:   RoleChild,
		Parent: "books",

		ParentKeyAttr: "bookId",
		LookupKeyAttr: "book_name",
		LookupField:   "name",
		InheritAttr:   "businessId",
	})
	r.Register(Collection{
		Name:   "cash_out",
		Entity: "cash-out entry",
		Table:  cfg.CashOutTable,
		Role:   RoleLeaf,
	})
	r.Register(Collection{
		Name:   "business",
		Entity: "business",
		Table:  cfg.BusinessTable,
		Role:   RoleRoot,
	})
	r.Register(Collection{
		Name:   "books",
		Entity: "book",
		Table:  cfg.BooksTable,
		Role:   RoleChild,
		Parent: "business",

		ParentKeyAttr: "businessId",
		LookupKeyAttr: "business_name",
		LookupField:   "name",
	})
	return r
}
