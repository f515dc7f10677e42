package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"brandexpo/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	profileRepo    domain.ProfileRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	oauthProvider  domain.OAuthProvider
	tokenExpiry    time.Duration
	contextTimeout time.Duration
}

// NewAuthService creates an AuthService with the given profile store and auth ports.
func NewAuthService(
	profileRepo domain.ProfileRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	oauthProvider domain.OAuthProvider,
	tokenExpiry time.Duration,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		profileRepo:    profileRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		oauthProvider:  oauthProvider,
		tokenExpiry:    tokenExpiry,
		contextTimeout: timeout,
	}
}

func (s *authService) SignUp(ctx context.Context, email, password, name string) (string, *domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return "", nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return "", nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return "", nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	profile := domain.NewProfile(email, name, domain.RoleUser, now, now)
	profile.PasswordHash = &hash
	profile.Salt = &salt
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return "", nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		return "", nil, fmt.Errorf("create profile: %w", err)
	}

	token, err := s.tokenIssuer.Issue(profile.ID, profile.Email, profile.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, profile, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get profile: %w", err)
	}
	if profile.PasswordHash == nil || profile.Salt == nil {
		// OAuth-registered identity with no password set.
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(*profile.PasswordHash, *profile.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(profile.ID, profile.Email, profile.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, profile, nil
}

// OAuthSignIn completes the OAuth callback: exchanges the authorization code,
// creates the profile on first sign-in, and issues a session token.
func (s *authService) OAuthSignIn(ctx context.Context, code string) (string, *domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if code == "" {
		return "", nil, fmt.Errorf("%w: authorization code is required", domain.ErrInvalidInput)
	}
	identity, err := s.oauthProvider.ExchangeCode(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	email := strings.TrimSpace(strings.ToLower(identity.Email))
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return "", nil, fmt.Errorf("get profile: %w", err)
		}
		// First OAuth sign-in: register the identity with role "user".
		now := time.Now()
		profile = domain.NewProfile(email, identity.Name, domain.RoleUser, now, now)
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return "", nil, fmt.Errorf("create profile: %w", err)
		}
	}

	token, err := s.tokenIssuer.Issue(profile.ID, profile.Email, profile.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, profile, nil
}

func (s *authService) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}
