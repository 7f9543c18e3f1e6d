package store

// Managed attribute names set by the store on every document.
const (
	AttrID        = "id"
	AttrCreatedAt = "created_at"
	AttrUpdatedAt = "updated_at"
)

// Document is a schemaless document body. Attribute values are whatever
// encoding/json produced for the request body (strings, float64 numbers,
// nested maps and slices).
type Document map[string]interface{}

// ID returns the document's id, or "" if unset.
func (d Document) ID() string {
	return d.StringField(AttrID)
}

// StringField returns the named attribute as a string, or "" when the
// attribute is absent or not a string.
func (d Document) StringField(name string) string {
	if v, ok := d[name].(string); ok {
		return v
	}
	return ""
}

// Has reports whether the named attribute is present with a non-nil value.
func (d Document) Has(name string) bool {
	v, ok := d[name]
	return ok && v != nil
}

// Clone returns a shallow copy. Nested values are shared.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// ListResult is the result of listing a collection.
type ListResult struct {
	// Items are the documents in the collection.
	Items []Document

	// Total is the number of documents returned.
	Total int
}
