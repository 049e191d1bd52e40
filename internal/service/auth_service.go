package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/odovalley/odo-valley-api/internal/domain"
	"github.com/odovalley/odo-valley-api/internal/repository/ports"
	"github.com/odovalley/odo-valley-api/internal/util"
)

// googleValidator is swapped out in tests; the default hits Google's
// certificate endpoint.
type googleValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type AuthService struct {
	users          ports.UserRepository
	jwt            *util.JWTManager
	googleAudience string
	validateGoogle googleValidator
}

func NewAuthService(users ports.UserRepository, jwt *util.JWTManager, googleAudience string) *AuthService {
	return &AuthService{
		users:          users,
		jwt:            jwt,
		googleAudience: strings.TrimSpace(googleAudience),
		validateGoogle: idtoken.Validate,
	}
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Login checks an email/password pair against the stored argon2 hash and
// issues a bearer token. Unknown email and wrong password are not
// distinguished in the returned error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// LoginWithGoogle accepts a Google ID token for an existing user. Accounts
// are provisioned out of band; an unknown Google email cannot sign in.
func (s *AuthService) LoginWithGoogle(ctx context.Context, googleToken string) (*LoginResult, error) {
	if s.googleAudience == "" {
		return nil, fmt.Errorf("google sign-in is not configured")
	}
	payload, err := s.validateGoogle(ctx, googleToken, s.googleAudience)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	email, _ := payload.Claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*LoginResult, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
