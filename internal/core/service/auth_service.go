package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskline/task-api/internal/core/domain"
	"github.com/taskline/task-api/internal/core/ports"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// dummyHash is a valid bcrypt digest compared against when the username is
// unknown, so that path costs the same as a real password check and login
// failures are indistinguishable by timing.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService implements registration, login, and per-request identity
// resolution over a user repository and an in-process session store.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	cost     int
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, bcryptCost int, logger zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, sessions: sessions, cost: bcryptCost, logger: logger}
}

// Register creates a new account. The username is trimmed before length
// validation; the password is stored only as a bcrypt hash. Duplicate
// usernames surface as domain.ErrUsernameTaken from the repository, where
// the database constraint resolves concurrent registrations.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen || len(password) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues an opaque session token.
// Unknown username and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a comparison so this path is not cheaper.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return "", err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("login successful")
	return token, nil
}

// Identify resolves a bearer token to a user id. Empty, malformed, and
// unknown tokens all yield ErrUnauthenticated.
func (s *AuthService) Identify(token string) (int64, error) {
	if token == "" {
		return 0, domain.ErrUnauthenticated
	}
	userID, ok := s.sessions.Resolve(token)
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	return userID, nil
}
