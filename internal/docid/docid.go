// Package docid provides document identifier generation for store collections.
package docid

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a fresh store-assigned document identifier.
// Callers may supply their own id on create; New covers the auto-assign path.
func New() string {
	return uuid.NewString()
}

// Ref returns the type-qualified document reference (e.g., "books#uuid").
// Used for log output, never persisted.
func Ref(collection, id string) string {
	return fmt.Sprintf("%s#%s", collection, id)
}
