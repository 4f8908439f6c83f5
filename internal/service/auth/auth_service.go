package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/repository"
	"github.com/Domenick1991/servicehub/internal/session"
	"github.com/Domenick1991/servicehub/internal/store"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidInput       = errors.New("email and password are required")
	ErrInvalidRole        = errors.New("role must be customer or provider")
	ErrNotAuthenticated   = errors.New("please login to continue")
)

type AuthUseCase interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	Logout(ctx context.Context, user *domain.User) error
	Session(ctx context.Context) (*domain.User, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type SignupInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type AuthResult struct {
	User  domain.User
	Token string
}

type AuthService struct {
	users      repository.UserRepository
	store      store.Store
	sessionKey string
	tokens     *session.Manager
	bcryptCost int
}

type AuthServiceOption func(*AuthService)

func WithBcryptCost(cost int) AuthServiceOption {
	return func(s *AuthService) {
		s.bcryptCost = cost
	}
}

// NewAuthService keeps the current session identifier under
// store.Key(prefix, store.SessionKey).
func NewAuthService(users repository.UserRepository, s store.Store, prefix string, tokens *session.Manager, opts ...AuthServiceOption) *AuthService {
	service := &AuthService{
		users:      users,
		store:      s,
		sessionKey: store.Key(prefix, store.SessionKey),
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}
	role := input.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if role != domain.RoleCustomer && role != domain.RoleProvider {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:       domain.NewUserID(),
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: string(hash),
		Role:     role,
		// Providers wait for an admin to verify them.
		Verified: role != domain.RoleProvider,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user signed up")
	return s.startSession(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	identifier = strings.TrimSpace(identifier)
	for _, u := range users {
		if (u.Email == identifier || u.ID == identifier) && passwordMatches(u.Password, password) {
			return s.startSession(ctx, u)
		}
	}
	log.Warn().Str("identifier", identifier).Msg("login failed")
	return nil, ErrInvalidCredentials
}

// Logout clears the stored session identifier if it still belongs to user.
// A later login by someone else is left in place.
func (s *AuthService) Logout(ctx context.Context, user *domain.User) error {
	if user == nil {
		return ErrNotAuthenticated
	}
	raw, err := s.store.Get(ctx, s.sessionKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if string(raw) != user.SessionID() {
		return nil
	}
	return s.store.Delete(ctx, s.sessionKey)
}

// Session restores the user recorded by the last login or signup.
func (s *AuthService) Session(ctx context.Context) (*domain.User, error) {
	raw, err := s.store.Get(ctx, s.sessionKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	user, err := s.users.FindByIdentifier(ctx, string(raw))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a bearer token to the stored user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) startSession(ctx context.Context, user domain.User) (*AuthResult, error) {
	if err := s.store.Set(ctx, s.sessionKey, []byte(user.SessionID())); err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}

// passwordMatches accepts bcrypt hashes and, for records written before
// hashing was introduced, plaintext values.
func passwordMatches(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

var _ AuthUseCase = (*AuthService)(nil)
