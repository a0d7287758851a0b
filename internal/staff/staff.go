package staff

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Errors returned by the registry.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("username already registered")
)

// Member is one staff account. PasswordHash is a bcrypt hash; the plain
// password never leaves Register/Authenticate.
type Member struct {
	ID           uuid.UUID
	Username     string
	FullName     string
	Role         string
	PasswordHash []byte
}

// Registry is the in-memory staff roster. Registration happens at startup
// from the seed list, but logins hit it from every terminal, so it is
// guarded.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Member
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Member)}
}

// Register adds a staff member with a bcrypt-hashed password.
func (r *Registry) Register(username, fullName, role, password string) (Member, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Member{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[username]; ok {
		return Member{}, ErrDuplicateUsername
	}
	m := &Member{
		ID:           uuid.New(),
		Username:     username,
		FullName:     fullName,
		Role:         role,
		PasswordHash: hash,
	}
	r.byName[username] = m
	return *m, nil
}

// Authenticate checks a username/password pair and returns the member on
// success. Unknown users and wrong passwords return the same error.
func (r *Registry) Authenticate(username, password string) (Member, error) {
	r.mu.RLock()
	m, ok := r.byName[username]
	r.mu.RUnlock()
	if !ok {
		return Member{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(m.PasswordHash, []byte(password)); err != nil {
		return Member{}, ErrInvalidCredentials
	}
	return *m, nil
}
