package session

import (
	"github.com/zalando/go-keyring"

	"github.com/mealbridge/mealcli/internal/models"
)

const (
	// KeyringService is the service name used in the OS keyring.
	KeyringService = "mealcli"
	// Keyring item names
	keyringToken   = "token"
	keyringRole    = "role"
	keyringActorID = "actor_id"
	keyringDocs    = "documents_uploaded"
)

// KeyringStore implements Store using the OS keyring.
type KeyringStore struct{}

// NewKeyringStore creates a new KeyringStore.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

// Get retrieves the session from the keyring.
func (s *KeyringStore) Get() (*models.Session, error) {
	token, err := keyring.Get(KeyringService, keyringToken)
	if err != nil {
		return nil, err
	}

	role, err := keyring.Get(KeyringService, keyringRole)
	if err != nil {
		return nil, err
	}

	actorID, err := keyring.Get(KeyringService, keyringActorID)
	if err != nil {
		return nil, err
	}

	// The documents flag is a cached hint; absence means false.
	docs, _ := keyring.Get(KeyringService, keyringDocs)

	return &models.Session{
		Token:             token,
		Role:              models.Role(role),
		ActorID:           actorID,
		DocumentsUploaded: docs == "true",
	}, nil
}

// Save stores the session in the keyring.
func (s *KeyringStore) Save(sess *models.Session) error {
	if err := keyring.Set(KeyringService, keyringToken, sess.Token); err != nil {
		return err
	}

	if err := keyring.Set(KeyringService, keyringRole, string(sess.Role)); err != nil {
		_ = keyring.Delete(KeyringService, keyringToken)
		return err
	}

	if err := keyring.Set(KeyringService, keyringActorID, sess.ActorID); err != nil {
		// Clean up the partial session if a later item fails
		_ = keyring.Delete(KeyringService, keyringToken)
		_ = keyring.Delete(KeyringService, keyringRole)
		return err
	}

	docs := "false"
	if sess.DocumentsUploaded {
		docs = "true"
	}
	return keyring.Set(KeyringService, keyringDocs, docs)
}

// Delete removes the session from the keyring.
func (s *KeyringStore) Delete() error {
	// Delete all items, ignoring errors if they don't exist
	_ = keyring.Delete(KeyringService, keyringToken)
	_ = keyring.Delete(KeyringService, keyringRole)
	_ = keyring.Delete(KeyringService, keyringActorID)
	_ = keyring.Delete(KeyringService, keyringDocs)
	return nil
}

// Exists returns true if a session is stored in the keyring.
func (s *KeyringStore) Exists() bool {
	_, err := keyring.Get(KeyringService, keyringToken)
	if err != nil {
		return false
	}

	_, err = keyring.Get(KeyringService, keyringActorID)
	return err == nil
}
