package services

import (
	"context"
	errs "errors"
	"strings"
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
	"github.com/biabrauna/econsciente-api/internal/domain/valueobjects"
)

// Limites de idade para cadastro
const (
	MinimumAge = 13
	MaximumAge = 120
)

// AuthService cadastra e autentica usuários
type AuthService struct {
	userRepo repositories.UserRepository
	sessions *SessionService
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	now      func() time.Time
	logger   ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	sessions *SessionService,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		now:      time.Now,
		logger:   logger.With("service", "auth"),
	}
}

// RegisterInput representa os dados para criar um usuário
type RegisterInput struct {
	Email           string
	Name            string
	Password        string
	ConfirmPassword string
	BirthDate       time.Time
	Biography       string
}

// Register cria um usuário com role padrão
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	s.logger.Info("registering user", "email", email.String())

	if input.Password != input.ConfirmPassword {
		return nil, errors.ErrPasswordMismatch
	}

	if input.BirthDate.IsZero() {
		return nil, errors.ErrInvalidBirthDate
	}
	age := entities.AgeAt(input.BirthDate, s.now())
	if age < 0 || age > MaximumAge {
		return nil, errors.ErrInvalidBirthDate
	}
	if age < MinimumAge {
		return nil, errors.ErrUnderage
	}

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	birth := input.BirthDate.UTC()
	user := &entities.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		Role:         entities.RoleUser,
		BirthDate:    &birth,
		Biography:    sanitizeText(input.Biography),
	}
	if err := user.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errs.Is(err, repositories.ErrDuplicate) {
			return nil, errors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// LoginInput são as credenciais e o cliente que abre a sessão
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

// LoginResult contém o JWT e a sessão server-side emitidos no login
type LoginResult struct {
	User        *entities.User
	AccessToken string
	ExpiresAt   time.Time
	Session     *entities.Session
}

// Login valida as credenciais, emite o JWT e abre uma sessão
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, input.Password) {
		s.logger.Warn("login failed", "email", email.String())
		return nil, errors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create(ctx, SessionInput{
		UserID:    user.ID,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &LoginResult{User: user, AccessToken: token, ExpiresAt: expiresAt, Session: session}, nil
}

// Logout encerra todas as sessões do usuário
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.sessions.InvalidateAll(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user logged out", "user_id", userID)
	return nil
}

// Authenticate resolve o usuário de um JWT
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*entities.User, error) {
	claims, err := s.tokens.Parse(accessToken)
	if err != nil {
		return nil, errors.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUnauthorized
	}
	return user, nil
}

// AuthenticateSession resolve o usuário de um token de sessão
func (s *AuthService) AuthenticateSession(ctx context.Context, sessionToken string) (*entities.User, error) {
	session, err := s.sessions.Validate(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrSessionInvalid
	}
	return user, nil
}
