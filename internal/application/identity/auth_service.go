// Package identity contains application services for accounts and
// authentication.
package identity

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/onlineshop/backend/internal/domain/identity"
	"github.com/onlineshop/backend/internal/domain/shared"
	"github.com/onlineshop/backend/internal/infrastructure/auth"
	"github.com/onlineshop/backend/internal/infrastructure/config"
)

// AuthService handles registration and login for customers, and login
// for the configured admin account.
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	admin      config.AdminConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	admin config.AdminConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		admin:      admin,
		logger:     logger,
	}
}

// Register creates a new customer account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Name, email, string(hash))
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Customer registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Login authenticates a customer or the admin and returns a signed
// token. The admin account lives in configuration, not in the users
// table, and logs in with the nil UUID as its ID.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if email == strings.ToLower(s.admin.Email) {
		return s.loginAdmin(req.Password)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email", zap.String("email", email))
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("email", email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.Active {
		s.logger.Warn("Login attempt for deactivated account", zap.String("email", email))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	token, err := s.jwtService.Generate(user.ID, user.Name, identity.RoleCustomer)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token.Token,
		TokenType: token.TokenType,
		ExpiresAt: token.ExpiresAt,
		User: UserInfo{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  identity.RoleCustomer.String(),
		},
	}, nil
}

func (s *AuthService) loginAdmin(password string) (*LoginResponse, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) != 1 {
		s.logger.Warn("Invalid admin password attempt")
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	token, err := s.jwtService.Generate(uuid.Nil, "Administrator", identity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token.Token,
		TokenType: token.TokenType,
		ExpiresAt: token.ExpiresAt,
		User: UserInfo{
			ID:    uuid.Nil,
			Name:  "Administrator",
			Email: s.admin.Email,
			Role:  identity.RoleAdmin.String(),
		},
	}, nil
}
