package tools

import (
	"strings"

	"github.com/google/uuid"
)

// UUID returns a random uuid without dashes.
func UUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
