package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("username, email and password are required")
)

// Identity is a registered user. Records are never mutated or deleted.
type Identity struct {
	Username  string
	Email     string
	CreatedAt time.Time

	passwordHash string
}

// IdentityStore is an in-memory username -> Identity map. All records are
// lost on process restart.
type IdentityStore struct {
	mu    sync.RWMutex
	users map[string]*Identity
	now   func() time.Time
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{
		users: make(map[string]*Identity),
		now:   time.Now,
	}
}

// Register creates a new identity. Fails if the username or the email is
// already taken. The password is stored as an unsalted sha256 digest.
func (s *IdentityStore) Register(username, email, password string) (*Identity, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return nil, ErrUsernameExists
	}
	// Linear email scan is fine at this scale.
	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrEmailExists
		}
	}

	id := &Identity{
		Username:     username,
		Email:        email,
		CreatedAt:    s.now(),
		passwordHash: hashPassword(password),
	}
	s.users[username] = id
	return id, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and wrong
// passwords both return ErrInvalidCredentials so callers cannot enumerate users.
func (s *IdentityStore) Authenticate(username, password string) (*Identity, error) {
	s.mu.RLock()
	u, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(u.passwordHash), []byte(hashPassword(password))) != 1 {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Lookup returns the identity for a username, or nil.
func (s *IdentityStore) Lookup(username string) *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[username]
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
