package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobtracker_backend/internal/feature/auth/domain/entity"
	"jobtracker_backend/internal/shared/apperr"
)

const (
	// minPasswordLength defines the minimum number of characters for a password.
	minPasswordLength = 8

	// dummyHash keeps login timing uniform when the identifier matches nobody.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrDuplicateUser when a unique index rejects it.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername returns ErrUserNotFound when no user has the username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// TokenIssuer defines signed session token issuance.
type TokenIssuer interface {
	GenerateToken(userID, username, email string) (string, error)
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token    string
	UserID   string
	Username string
	Email    string
}

// authUsecase implements registration and login.
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
	newID  func() string
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
		newID:  uuid.NewString,
	}
}

// validatePassword checks whether the password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperr.Newf(apperr.ErrValidation, "password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register creates a user with a bcrypt-hashed password and returns the new user id.
// Email and username must both be unused.
func (u *authUsecase) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" {
		return "", apperr.New(apperr.ErrValidation, "username and email are required")
	}
	if err := validatePassword(password); err != nil {
		return "", err
	}

	if err := u.ensureUnused(ctx, email, username); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           u.newID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// Login authenticates by email or username and returns a signed token.
// The identifier is matched against emails first, then usernames. bcrypt runs even when
// no user matches so both failure modes take the same time and return the same error.
func (u *authUsecase) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := u.lookup(ctx, identifier)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if user == nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (u *authUsecase) lookup(ctx context.Context, identifier string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(identifier))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	return u.users.FindByUsername(ctx, identifier)
}

func (u *authUsecase) ensureUnused(ctx context.Context, email, username string) error {
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return ErrUsernameAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
