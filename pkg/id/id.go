package id

import (
	"strings"

	"github.com/google/uuid"
	"github.com/teris-io/shortid"
)

// GetUUIDWithoutDashes returns a 32-char uuid, used for entity ids.
func GetUUIDWithoutDashes() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ShortId returns a short url-safe id, used for trace ids.
func ShortId() string {
	sid, err := shortid.Generate()
	if err != nil {
		return GetUUIDWithoutDashes()[:9]
	}
	return sid
}
