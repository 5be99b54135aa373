package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/paperleaf/paperleaf/internal/auth"
	"github.com/paperleaf/paperleaf/internal/domain"
	"github.com/paperleaf/paperleaf/internal/event"
	"github.com/paperleaf/paperleaf/internal/repository"
	apperrors "github.com/paperleaf/paperleaf/pkg/errors"
	"github.com/paperleaf/paperleaf/pkg/middleware"
)

// minPasswordLength is the minimum password length required at signup.
const minPasswordLength = 6

// EventPublisher is the subset of the event producer the services need.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *domain.User) error
	PublishBookAdded(ctx context.Context, book *domain.Book) error
	PublishReviewCreated(ctx context.Context, review *domain.Review, averageRating float64) error
}

var _ EventPublisher = (*event.Producer)(nil)

// AuthService implements the business logic for signup, login, and token
// verification.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *auth.JWTManager
	producer   EventPublisher
	bcryptCost int
	logger     *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *auth.JWTManager,
	producer EventPublisher,
	bcryptCost int,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		producer:   producer,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// RegisterInput holds the parameters for creating an account.
type RegisterInput struct {
	Username string
	Password string
}

// LoginInput holds the parameters for logging in.
type LoginInput struct {
	Username string
	Password string
}

// Register creates a new account, hashes the password, and returns the user
// together with a signed bearer token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	if input.Username == "" {
		return nil, "", apperrors.InvalidInput("username is required")
	}
	if input.Password == "" {
		return nil, "", apperrors.InvalidInput("password is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, "", apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtManager.Generate(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, token, nil
}

// Login authenticates with a username and password and returns a bearer
// token. Unknown usernames and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	if input.Username == "" {
		return nil, "", apperrors.InvalidInput("username is required")
	}
	if input.Password == "" {
		return nil, "", apperrors.InvalidInput("password is required")
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, "", apperrors.InvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", apperrors.InvalidCredentials()
	}

	token, err := s.jwtManager.Generate(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, token, nil
}

// Authenticate verifies a bearer token and resolves the account it belongs
// to. Tokens whose subject no longer exists are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*middleware.Identity, error) {
	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("account no longer exists")
	}

	return &middleware.Identity{
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}
