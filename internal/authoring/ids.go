// Package authoring mutates question variant content in response to discrete
// editor operations, keeping referential invariants consistent. Every builder
// operation is a total function over the in-memory content: unknown IDs are
// no-ops and nothing here returns an error. Validation happens only at save
// time, in the validator package.
package authoring

import "github.com/google/uuid"

func newID() string {
	return uuid.NewString()
}
