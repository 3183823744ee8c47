// CatalogHQ | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cataloghq/catalog-api/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash, name string,
	) (*UserInfo, error)
}

type Service struct {
	repo         Repository
	userProvider UserProvider
	tokenTTL     time.Duration
}

func NewService(
	repo Repository,
	userProvider UserProvider,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		repo:         repo,
		userProvider: userProvider,
		tokenTTL:     tokenTTL,
	}
}

// Login verifies credentials and issues a fresh opaque bearer token.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*TokenResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	plaintext, err := core.GenerateAccessToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	token := &AccessToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: core.HashToken(plaintext),
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}

	if err := s.repo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	return &TokenResponse{
		AccessToken: plaintext,
		TokenType:   "Bearer",
	}, nil
}

// Logout revokes the presented token by deleting its row. Unknown tokens
// are treated as already revoked.
func (s *Service) Logout(ctx context.Context, token string) error {
	stored, err := s.repo.FindByHash(ctx, core.HashToken(token))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find token: %w", err)
	}

	if err := s.repo.DeleteByID(ctx, stored.ID); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

// Register creates a new user account. Route-level gating restricts this
// to admins.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*UserResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}, nil
}

// VerifyToken resolves an opaque bearer token to its user ID. It backs
// the Authenticator middleware; any unknown or expired token maps to
// core.ErrUnauthorized.
func (s *Service) VerifyToken(
	ctx context.Context,
	token string,
) (string, error) {
	stored, err := s.repo.FindByHash(ctx, core.HashToken(token))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", fmt.Errorf("verify token: %w", core.ErrUnauthorized)
		}
		return "", fmt.Errorf("find token: %w", err)
	}

	if stored.IsExpired() {
		//nolint:errcheck // opportunistic cleanup of the expired row
		_ = s.repo.DeleteByID(ctx, stored.ID)
		return "", fmt.Errorf("verify token: %w", core.ErrUnauthorized)
	}

	return stored.UserID, nil
}

// StartTokenJanitor purges expired token rows in the background until
// ctx is cancelled. Expired tokens already fail verification; this just
// keeps the table from growing unbounded.
func (s *Service) StartTokenJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				count, err := s.repo.DeleteExpired(ctx)
				if err != nil {
					slog.Warn("purge expired tokens", "error", err)
					continue
				}
				if count > 0 {
					slog.Info("purged expired tokens", "count", count)
				}
			}
		}
	}()
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}, nil
}
