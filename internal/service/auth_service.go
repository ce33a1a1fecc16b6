package service

import (
	"context"
	"errors"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rentier/internal/auth"
	apperrors "rentier/internal/errors"
	"rentier/internal/model"
	"rentier/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and the session state machine:
// anonymous -> authenticated (login) -> anonymous (logout or expiry).
type AuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, session *auth.Session, email, password string, remember bool) (*model.User, string, error)
	Logout(ctx context.Context, session *auth.Session) error
}

type authService struct {
	users    repository.UserRepository
	sessions *auth.Manager
	log      zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, sessions *auth.Manager, log zerolog.Logger) AuthService {
	return &authService{users: users, sessions: sessions, log: log}
}

// Register creates a new user with a hashed password. A duplicate email is
// ErrConflict; exactly one row exists for an email afterwards either way.
func (s *authService) Register(ctx context.Context, email, password string) (*model.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, &apperrors.StorageError{Op: "hash password", Err: err}
	}

	user, err := model.NewUser(email, string(hashed), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.ErrConflict
		}
		return nil, &apperrors.StorageError{Op: "create user", Err: err}
	}

	s.log.Info().Uint("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login verifies credentials, binds the user to the session and returns the
// reissued cookie token. The two failure reasons stay distinguishable, which
// leaks account existence; see the AuthError doc.
func (s *authService) Login(ctx context.Context, session *auth.Session, email, password string, remember bool) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", &apperrors.AuthError{Reason: apperrors.AuthUserNotFound}
		}
		return nil, "", &apperrors.StorageError{Op: "find user", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", &apperrors.AuthError{Reason: apperrors.AuthBadCredentials}
	}

	token, err := s.sessions.Authenticate(ctx, session, user.ID, remember)
	if err != nil {
		return nil, "", &apperrors.StorageError{Op: "bind session", Err: err}
	}

	s.log.Info().Uint("user_id", user.ID).Bool("remember", remember).Msg("user logged in")
	return user, token, nil
}

// Logout clears the session's identity binding. Logging out twice is fine.
func (s *authService) Logout(ctx context.Context, session *auth.Session) error {
	if err := s.sessions.Destroy(ctx, session); err != nil {
		return &apperrors.StorageError{Op: "destroy session", Err: err}
	}
	return nil
}

// validatePassword enforces the registration policy on the plaintext before
// it is hashed: at least 8 characters with upper and lower case letters, a
// digit and a special character.
func validatePassword(password string) error {
	if len(password) < 8 {
		return &apperrors.ValidationError{Field: "password", Rule: "min_length_8"}
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return &apperrors.ValidationError{Field: "password", Rule: "upper_lower_digit_special"}
	}
	return nil
}
