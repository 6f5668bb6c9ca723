// Package session holds the signed-in account state and the feature
// gates that depend on it. The persisted session replaces the browser
// client's ad hoc local-storage flags with one typed value object; it
// gates navigation only and is never authoritative over a fresh server
// fetch.
package session

import (
	"errors"
	"os"

	"github.com/mealbridge/mealcli/internal/models"
)

const (
	// Environment variable names
	EnvToken        = "MEALBRIDGE_TOKEN"
	EnvRole         = "MEALBRIDGE_ROLE"
	EnvActorID      = "MEALBRIDGE_ACTOR_ID"
	EnvDocsUploaded = "MEALBRIDGE_DOCS_UPLOADED"
)

// Common errors
var (
	ErrNoSession = errors.New("no session found")
)

// Store defines the interface for session persistence.
type Store interface {
	// Get retrieves the stored session.
	Get() (*models.Session, error)
	// Save persists a session.
	Save(s *models.Session) error
	// Delete removes the stored session.
	Delete() error
	// Exists returns true if a session is stored.
	Exists() bool
}

// GetSession retrieves the session from all available sources.
// Priority: environment variables > keyring
func GetSession() (*models.Session, error) {
	envSession := GetSessionFromEnv()
	if envSession.IsValid() {
		return envSession, nil
	}

	keyringStore := NewKeyringStore()
	if keyringStore.Exists() {
		return keyringStore.Get()
	}

	return nil, ErrNoSession
}

// GetSessionFromEnv reads session fields from environment variables.
// The documents flag carries the same cached hint the keyring stores.
func GetSessionFromEnv() *models.Session {
	return &models.Session{
		Token:             os.Getenv(EnvToken),
		Role:              models.Role(os.Getenv(EnvRole)),
		ActorID:           os.Getenv(EnvActorID),
		DocumentsUploaded: os.Getenv(EnvDocsUploaded) == "true",
	}
}

// SaveSession saves the session to the keyring.
func SaveSession(s *models.Session) error {
	store := NewKeyringStore()
	return store.Save(s)
}

// DeleteSession removes the session from the keyring.
func DeleteSession() error {
	store := NewKeyringStore()
	return store.Delete()
}

// HasSession returns true if a session exists in env or keyring.
func HasSession() bool {
	if GetSessionFromEnv().IsValid() {
		return true
	}

	store := NewKeyringStore()
	return store.Exists()
}
