package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ErlanBelekov/bookstore/internal/domain"
	"github.com/ErlanBelekov/bookstore/internal/email"
	"github.com/ErlanBelekov/bookstore/internal/password"
	"github.com/ErlanBelekov/bookstore/internal/repository"
)

// TokenManager issues and verifies bearer tokens. Satisfied by *token.Manager.
type TokenManager interface {
	Issue(userID string) (string, error)
	Verify(raw string) (string, error)
}

// welcomeEmailTimeout bounds a single welcome email send.
const welcomeEmailTimeout = 10 * time.Second

type AuthUsecase struct {
	users           repository.UserRepository
	tokens          TokenManager
	email           email.Sender
	logger          *slog.Logger
	registerAsAdmin bool

	mailWG sync.WaitGroup
}

func NewAuthUsecase(users repository.UserRepository, tokens TokenManager, emailSender email.Sender, logger *slog.Logger, registerAsAdmin bool) *AuthUsecase {
	return &AuthUsecase{
		users:           users,
		tokens:          tokens,
		email:           emailSender,
		logger:          logger.With("component", "auth_usecase"),
		registerAsAdmin: registerAsAdmin,
	}
}

// Register creates a user with a hashed password. Every registrant gets the
// configured admin flag; there is no other path to create users.
func (u *AuthUsecase) Register(ctx context.Context, emailAddr, plaintext string) (*domain.User, error) {
	_, err := u.users.FindByEmail(ctx, emailAddr)
	if err == nil {
		return nil, domain.ErrUserExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	user, err := u.users.Create(ctx, &domain.User{
		Email:        emailAddr,
		PasswordHash: hash,
		IsAdmin:      u.registerAsAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	u.mailWG.Add(1)
	go u.sendWelcome(context.WithoutCancel(ctx), user.ID, emailAddr)

	return user, nil
}

// sendWelcome runs detached from the request; failures are only logged.
func (u *AuthUsecase) sendWelcome(ctx context.Context, userID, to string) {
	defer u.mailWG.Done()

	ctx, cancel := context.WithTimeout(ctx, welcomeEmailTimeout)
	defer cancel()

	body := "<p>Your bookstore account is ready. Sign in with this email address.</p>"
	if err := u.email.Send(ctx, to, "Welcome to the bookstore", body); err != nil {
		u.logger.WarnContext(ctx, "send welcome email", "user_id", userID, "error", err)
	}
}

// Wait blocks until in-flight welcome emails have finished.
func (u *AuthUsecase) Wait() {
	u.mailWG.Wait()
}

// Login checks the credentials and returns a signed bearer token.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, plaintext string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Authenticate resolves the Authorization header value to a stored user.
// Checks run in a fixed order: header present, header shape, token validity,
// user exists. A panic during parsing or verification is reported as
// domain.ErrTokenInvalid.
func (u *AuthUsecase) Authenticate(ctx context.Context, header string) (user *domain.User, err error) {
	defer func() {
		if r := recover(); r != nil {
			u.logger.ErrorContext(ctx, "authenticate panic", "panic", r)
			user, err = nil, domain.ErrTokenInvalid
		}
	}()

	raw, err := bearerToken(header)
	if err != nil {
		return nil, err
	}

	userID, err := u.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}

	user, err = u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// bearerToken extracts the token from "<scheme> <token>". The scheme word
// itself is not checked.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrTokenMissing
	}
	parts := strings.Split(header, " ")
	if len(parts) < 2 || parts[1] == "" {
		return "", domain.ErrTokenMalformed
	}
	return parts[1], nil
}
