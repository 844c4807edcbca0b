package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
)

const (
	sessionKeyPrefix    = "wizard:session:"
	submitLockKeyPrefix = "wizard:submit:"
)

// WizardSessionStore keeps wizard sessions in Redis. Payloads are sealed with
// XChaCha20-Poly1305; drafts carry bank and personal data.
type WizardSessionStore struct {
	encryptionKey []byte
	ttl           time.Duration
}

var (
	setSessionValue    = Set
	getSessionValue    = Get
	delSessionValue    = Del
	setNXSessionValue  = SetNX
	marshalSessionJSON = json.Marshal
)

// NewWizardSessionStore creates a store; ttl bounds how long an idle session lives
func NewWizardSessionStore(encryptionKeyHex string, ttl time.Duration) (*WizardSessionStore, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	return &WizardSessionStore{encryptionKey: key, ttl: ttl}, nil
}

// Save stores the session and refreshes its TTL
func (s *WizardSessionStore) Save(ctx context.Context, session *entities.WizardSession) error {
	jsonData, err := marshalSessionJSON(session)
	if err != nil {
		return err
	}

	encryptedData, err := s.encrypt(jsonData)
	if err != nil {
		return err
	}

	if err := setSessionValue(ctx, sessionKeyPrefix+session.ID, encryptedData, s.ttl); err != nil {
		return domainerrors.NewStorageError("save wizard session", err)
	}
	return nil
}

// Get loads a session; a missing or expired one is ErrSessionNotFound
func (s *WizardSessionStore) Get(ctx context.Context, id string) (*entities.WizardSession, error) {
	encryptedDataStr, err := getSessionValue(ctx, sessionKeyPrefix+id)
	if err != nil {
		if IsNil(err) {
			return nil, domainerrors.ErrSessionNotFound
		}
		return nil, domainerrors.NewStorageError("load wizard session", err)
	}

	decryptedData, err := s.decrypt(encryptedDataStr)
	if err != nil {
		return nil, err
	}

	var session entities.WizardSession
	if err := json.Unmarshal(decryptedData, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// Delete removes a session
func (s *WizardSessionStore) Delete(ctx context.Context, id string) error {
	if err := delSessionValue(ctx, sessionKeyPrefix+id); err != nil {
		return domainerrors.NewStorageError("delete wizard session", err)
	}
	return nil
}

// AcquireSubmitLock takes the per-session submit lock; false means it is held
func (s *WizardSessionStore) AcquireSubmitLock(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	ok, err := setNXSessionValue(ctx, submitLockKeyPrefix+id, "1", ttl)
	if err != nil {
		return false, domainerrors.NewStorageError("acquire submit lock", err)
	}
	return ok, nil
}

// ReleaseSubmitLock drops the submit lock
func (s *WizardSessionStore) ReleaseSubmitLock(ctx context.Context, id string) error {
	if err := delSessionValue(ctx, submitLockKeyPrefix+id); err != nil {
		return domainerrors.NewStorageError("release submit lock", err)
	}
	return nil
}

func (s *WizardSessionStore) encrypt(plaintext []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(s.encryptionKey)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := aead.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(ciphertext), nil
}

func (s *WizardSessionStore) decrypt(ciphertextHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(s.encryptionKey)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < aead.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}
