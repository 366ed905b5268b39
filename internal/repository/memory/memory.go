// Package memory implements the repository interfaces on process-local maps.
// It backs the development driver and service tests.
package memory

import (
	"time"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

var now = func() time.Time {
	return time.Now().UTC()
}

func ptr[T any](v T) *T {
	return &v
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
