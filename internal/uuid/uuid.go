// Package uuid generates request ids.
package uuid

import (
	"strings"

	"github.com/gofrs/uuid"
)

// New returns a V4 UUID.
func New() string {
	id, err := uuid.NewV4()
	if err != nil {
		// crypto/rand failing leaves nothing sensible to do
		panic("Error generating UUID " + err.Error())
	}
	return id.String()
}

// NewHex returns a V4 UUID without dashes.
func NewHex() string {
	return strings.ReplaceAll(New(), "-", "")
}

// Valid returns true if id is parsed as UUID without error.
func Valid(id string) bool {
	_, err := uuid.FromString(id)
	return err == nil
}

// OrNew returns id when it is a valid UUID and a fresh one otherwise. It
// is used to accept a caller supplied X-Request-ID.
func OrNew(id string) string {
	if id != "" && Valid(id) {
		return id
	}
	return New()
}
