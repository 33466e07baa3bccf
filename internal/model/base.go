package model

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a prefixed identifier such as "journey-5f3a…", matching the
// id convention of the existing production schema.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String())
}
