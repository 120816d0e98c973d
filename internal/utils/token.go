package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewOpaqueToken returns an unguessable token suitable for capability URLs,
// e.g. the public availability form. Treat it as a credential: never log it.
func NewOpaqueToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
