package services

import (
	"context"
	"errors"
	"log"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/config"
	"gymdesk/internal/core/domain"
	"gymdesk/internal/pkg/jwt"
	"gymdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
)

// AuthService handles staff authentication business logic
type AuthService struct {
	staffRepo repositories.StaffUserRepository
	cfg       *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(staffRepo repositories.StaffUserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		staffRepo: staffRepo,
		cfg:       cfg,
	}
}

// RegisterInput represents staff registration input
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=STAFF ADMIN"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *models.StaffUserResponse `json:"user"`
	AccessToken string                    `json:"access_token"`
}

// Register creates a new staff account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.StaffUserResponse, error) {
	if !password.Validate(input.Password) {
		return nil, domain.Validation("password must be at least %d characters", password.MinLength)
	}

	// 1. Check if username already exists
	exists, err := s.staffRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, domain.Storage(err, "failed to check username")
	}
	if exists {
		return nil, domain.Conflict("username already taken")
	}

	// 2. Check if email already exists
	exists, err = s.staffRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, domain.Storage(err, "failed to check email")
	}
	if exists {
		return nil, domain.Conflict("email already registered")
	}

	// 3. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, domain.Storage(err, "failed to hash password")
	}

	// 4. Create staff user
	role := input.Role
	if role == "" {
		role = models.RoleStaff
	}
	user := &models.StaffUser{
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     role,
		IsActive: true,
	}
	if err := s.staffRepo.Create(ctx, user); err != nil {
		return nil, domain.Storage(err, "failed to create user")
	}

	log.Printf("✅ Staff registered: %s (%s)", user.Username, user.Role)
	return user.ToResponse(), nil
}

// Login authenticates a staff user and issues an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by username
	user, err := s.staffRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, domain.Storage(err, "failed to load user")
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Generate access token
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Username,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, domain.Storage(err, "failed to generate token")
	}

	log.Printf("✅ Staff logged in: %s", user.Username)
	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: accessToken,
	}, nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}
