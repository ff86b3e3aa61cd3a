// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/carterperez-dev/asset-portal/internal/core"
	"github.com/carterperez-dev/asset-portal/internal/middleware"
)

// UserInfo is an account as the credential store sees it.
type UserInfo struct {
	core.Identity
	PasswordHash string
}

type NewAccount struct {
	Name         string
	EmployeeID   string
	Email        string
	PasswordHash string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id int64) (*UserInfo, error)
	Create(ctx context.Context, account NewAccount) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type TokenIssuer interface {
	CreateAccessToken(identity core.Identity) (string, time.Time, error)
	middleware.TokenVerifier
}

type Service struct {
	tokens       TokenIssuer
	userProvider UserProvider
	revocations  Revocations
}

func NewService(
	tokens TokenIssuer,
	userProvider UserProvider,
	revocations Revocations,
) *Service {
	return &Service{
		tokens:       tokens,
		userProvider: userProvider,
		revocations:  revocations,
	}
}

// Register validates and stores a new account. The password is hashed before
// it leaves this function and is never stored in the clear.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*ProfileResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"employee_id", req.EmployeeID},
		{"email", req.Email},
		{"password", req.Password},
		{"confirm_password", req.ConfirmPassword},
	} {
		if f.value == "" {
			return nil, core.NewValidationError(f.name, "is required")
		}
	}

	if req.Password != req.ConfirmPassword {
		return nil, core.NewValidationError("confirm_password", "passwords do not match")
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, NewAccount{
		Name:         req.Name,
		EmployeeID:   req.EmployeeID,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	slog.InfoContext(ctx, "user registered",
		"user_id", user.UserID,
		"email", user.Email,
		"employee_id", user.EmployeeID,
	)

	return toProfile(user.Identity), nil
}

// Authenticate returns the verified identity for an email and password. An
// unknown email and a wrong password produce the same error and cost the same
// hash comparison.
func (s *Service) Authenticate(
	ctx context.Context,
	email, password string,
) (core.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(password, nil)
			return core.Identity{}, core.ErrInvalidCredentials
		}
		return core.Identity{}, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		password,
		&user.PasswordHash,
	)
	if err != nil {
		slog.WarnContext(ctx, "stored password hash unreadable",
			"user_id", user.UserID,
			"error", err,
		)
		return core.Identity{}, core.ErrInvalidCredentials
	}

	if !valid {
		return core.Identity{}, core.ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.UserID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"user_id", user.UserID,
				"error", err,
			)
		}
	}

	return user.Identity, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	identity, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	accessToken, expiresAt, err := s.tokens.CreateAccessToken(identity)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &AuthResponse{
		User: *toProfile(identity),
		Tokens: TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   int(time.Until(expiresAt).Seconds()),
			ExpiresAt:   expiresAt,
		},
	}, nil
}

func (s *Service) Profile(
	ctx context.Context,
	identity core.Identity,
) (*ProfileResponse, error) {
	if identity.IsZero() {
		return nil, fmt.Errorf("profile: %w", core.ErrUnauthorized)
	}

	user, err := s.userProvider.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}

	return toProfile(user.Identity), nil
}

// Logout revokes the presented access token for the rest of its lifetime.
func (s *Service) Logout(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) error {
	if claims == nil || claims.TokenID == "" {
		return fmt.Errorf("logout: %w", core.ErrUnauthorized)
	}

	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

// VerifyAccessToken checks the signature and then the revocation list.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	if revoked {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

func toProfile(identity core.Identity) *ProfileResponse {
	return &ProfileResponse{
		Name:       identity.Name,
		Email:      identity.Email,
		EmployeeID: identity.EmployeeID,
	}
}

var _ middleware.TokenVerifier = (*Service)(nil)
