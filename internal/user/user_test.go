package user

import (
	"testing"
)

func TestGetCurrentUsername(t *testing.T) {
	username := GetCurrentUsername()

	if username == "" {
		t.Error("GetCurrentUsername() should never return an empty string")
	}
}

func TestResolveActorNeverFails(t *testing.T) {
	actor := ResolveActor()

	// Resolution may find nothing, but when a name is present it is non-empty
	if actor.Name != nil && *actor.Name == "" {
		t.Error("Actor name must not be an empty string")
	}
	if actor.ID != nil && *actor.ID == "" {
		t.Error("Actor ID must not be an empty string")
	}
}
