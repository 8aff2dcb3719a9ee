package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"task-api/internal/config"
	"task-api/internal/dto"
	"task-api/internal/models"
	"task-api/internal/repository"
	"task-api/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TokenStore remembers revoked token ids
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService registration, login and token checks
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *utils.JWTManager
	tokens     TokenStore
	cfg        *config.Config
	logger     *logrus.Logger
}

// NewAuthService creates an AuthService
func NewAuthService(
	userRepo *repository.UserRepository,
	jwtManager *utils.JWTManager,
	tokens TokenStore,
	cfg *config.Config,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		tokens:     tokens,
		cfg:        cfg,
		logger:     logger,
	}
}

// Register creates a user with a hashed password
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := utils.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        dto.NewUserInfo(user),
	}, nil
}

// Authenticate validates a bearer token and rejects revoked ones
func (s *AuthService) Authenticate(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Logout revokes only the presented token; other sessions stay valid
func (s *AuthService) Logout(ctx context.Context, claims *utils.JWTClaims) error {
	if err := s.tokens.Revoke(ctx, claims.ID, claims.TTL()); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"user_id": claims.UserID, "jti": claims.ID}).Info("token revoked")
	return nil
}

// GetMe returns the authenticated user
func (s *AuthService) GetMe(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "get user")
	}
	return user, nil
}

// InitAdmin seeds the administrator account from config if none exists
func (s *AuthService) InitAdmin(ctx context.Context) error {
	admin, err := s.userRepo.GetAdmin(ctx)
	if err == nil && admin != nil {
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	// the configured password may already be a bcrypt hash
	passwordHash := s.cfg.Admin.Password
	if !utils.IsBcryptHash(passwordHash) {
		hashedPassword, err := utils.HashPassword(s.cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		passwordHash = hashedPassword
	}

	user := &models.User{
		Name:         s.cfg.Admin.Name,
		Email:        strings.ToLower(s.cfg.Admin.Email),
		PasswordHash: passwordHash,
		IsAdmin:      true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.logger.WithField("email", user.Email).Info("admin account created")
	return nil
}
