package utils

import (
	"log"

	"github.com/google/uuid"
)

// GenerateID returns a new random ID for users, goals, check-ins,
// milestones and sessions.
func GenerateID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		log.Fatal("Failed to generate a unique ID", err)
	}
	return id.String()
}
