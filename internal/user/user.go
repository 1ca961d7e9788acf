package user

import (
	"os"
	"os/user"

	"github.com/quadrodev/quadro/internal/models"
)

// GetCurrentUsername returns the current system username.
// It tries multiple methods with fallbacks:
// 1. user.Current() - most reliable, gets username from OS
// 2. USER environment variable - fallback for restricted environments
// 3. "unknown" - final fallback to ensure a non-empty value
func GetCurrentUsername() string {
	currentUser, err := user.Current()
	if err != nil {
		username := os.Getenv("USER")
		if username == "" {
			return "unknown"
		}
		return username
	}
	return currentUser.Username
}

// ResolveActor builds the actor recorded in the audit log. Resolution never
// fails: when the OS gives us nothing, both fields stay nil and the mutation
// proceeds unattributed.
func ResolveActor() models.Actor {
	var actor models.Actor

	currentUser, err := user.Current()
	if err == nil {
		if currentUser.Uid != "" {
			uid := currentUser.Uid
			actor.ID = &uid
		}
		if currentUser.Username != "" {
			name := currentUser.Username
			actor.Name = &name
		}
		return actor
	}

	if username := os.Getenv("USER"); username != "" {
		actor.Name = &username
	}
	return actor
}
