package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ideaforge-io/ideaforge/internal/domain"
)

// AuthService handles signup, login, token resolution, and account
// deletion. Session tokens are HS256-signed strings, but the stored
// session is the authority: resolution matches the token against storage
// and honors the stored expiry, so logout and sweeps revoke tokens no
// matter what they claim.
type AuthService struct {
	users       domain.UserRepository
	sessions    domain.SessionRepository
	tokenSecret []byte
	bcryptCost  int
	sessionTTL  time.Duration
}

// NewAuthService creates an AuthService. A non-positive ttl selects the
// default session lifetime.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, tokenSecret string, bcryptCost int, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	return &AuthService{
		users:       users,
		sessions:    sessions,
		tokenSecret: []byte(tokenSecret),
		bcryptCost:  bcryptCost,
		sessionTTL:  ttl,
	}
}

// SignupInput carries a new account's profile.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Bio      string
	Type     domain.UserType
	Address  string
	Skills   []string
}

// Signup creates an account and an initial session. The email must not
// resolve to a live user; historical index duplicates or orphans do not
// block reuse of an address.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, string, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	if err == nil {
		return nil, "", domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Bio:          in.Bio,
		Type:         in.Type,
		Address:      in.Address,
		Skills:       in.Skills,
	}
	if user.Name == "" {
		user.Name = "Anonymous User"
	}
	if user.Type == "" {
		user.Type = domain.UserTypeHybrid
	}
	if user.Skills == nil {
		user.Skills = []string{}
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a new session. Earlier sessions
// stay live; each login adds one.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to a user id. Anything short of a
// live stored session is ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	userID, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("resolve token: %w", err)
	}
	return userID, nil
}

// Logout invalidates the session behind the token; unknown tokens are a
// no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Invalidate(ctx, token)
}

// DeleteAccount removes the authenticated user and everything that
// depends on it: email index entry, sessions, data records.
func (s *AuthService) DeleteAccount(ctx context.Context, token string) error {
	userID, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by id.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) issueSession(ctx context.Context, userID string) (string, error) {
	token, err := s.mintToken(userID)
	if err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}
	if _, err := s.sessions.Create(ctx, userID, token, s.sessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

// mintToken signs a bearer token. The jti claim makes every token unique
// even for back-to-back logins by the same user.
func (s *AuthService) mintToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.sessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokenSecret)
}
