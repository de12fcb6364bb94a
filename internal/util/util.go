package util

import (
	"github.com/google/uuid"
)

// GenUUID generates a new UUID string used as the stable handle for activities.
func GenUUID() string {
	return uuid.New().String()
}
