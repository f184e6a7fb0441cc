package utils

import "github.com/google/uuid"

// GenerateID returns a new UUIDv4 string for use as a record identifier.
func GenerateID() string {
	return uuid.New().String()
}
