package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"quickbill/internal/config"
	"quickbill/internal/domain"
	"quickbill/internal/port"
)

// Claims represents the JWT claims carrying enterprise context.
type Claims struct {
	jwt.RegisteredClaims
	EnterpriseID uuid.UUID `json:"enterprise_id"`
	Email        string    `json:"email"`
}

// RegisterInput is the DTO for enterprise registration.
type RegisterInput struct {
	EnterpriseName string `json:"enterpriseName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Phone          string `json:"phone" binding:"required"`
	Address        string `json:"address" binding:"required"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileInput is the DTO for profile updates. Empty fields are left
// unchanged. Email and password changes are not supported here.
type UpdateProfileInput struct {
	EnterpriseName string `json:"enterpriseName"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
}

// AuthResult bundles the authenticated enterprise with its token.
type AuthResult struct {
	Enterprise *domain.Enterprise `json:"enterprise"`
	Token      string             `json:"token"`
	ExpiresAt  time.Time          `json:"expires_at"`
}

// AuthService defines the enterprise authentication contract.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetProfile(ctx context.Context, enterpriseID uuid.UUID) (*domain.Enterprise, error)
	UpdateProfile(ctx context.Context, enterpriseID uuid.UUID, input UpdateProfileInput) (*domain.Enterprise, error)
}

type authService struct {
	enterpriseRepo port.EnterpriseRepository
	cfg            config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(enterpriseRepo port.EnterpriseRepository, cfg config.JWTConfig) AuthService {
	return &authService{enterpriseRepo: enterpriseRepo, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.enterpriseRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	enterprise := &domain.Enterprise{
		Name:         input.EnterpriseName,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Address:      input.Address,
	}
	if err := s.enterpriseRepo.Create(ctx, enterprise); err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	return s.issueToken(enterprise)
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	enterprise, err := s.enterpriseRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(enterprise.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueToken(enterprise)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) GetProfile(ctx context.Context, enterpriseID uuid.UUID) (*domain.Enterprise, error) {
	return s.enterpriseRepo.GetByID(ctx, enterpriseID)
}

func (s *authService) UpdateProfile(ctx context.Context, enterpriseID uuid.UUID, input UpdateProfileInput) (*domain.Enterprise, error) {
	enterprise, err := s.enterpriseRepo.GetByID(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}

	if input.EnterpriseName != "" {
		enterprise.Name = input.EnterpriseName
	}
	if input.Phone != "" {
		enterprise.Phone = input.Phone
	}
	if input.Address != "" {
		enterprise.Address = input.Address
	}

	if err := s.enterpriseRepo.Update(ctx, enterprise); err != nil {
		return nil, fmt.Errorf("auth.UpdateProfile: %w", err)
	}
	return enterprise, nil
}

func (s *authService) issueToken(enterprise *domain.Enterprise) (*AuthResult, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.TokenExpiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   enterprise.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
		EnterpriseID: enterprise.ID,
		Email:        enterprise.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &AuthResult{Enterprise: enterprise, Token: signed, ExpiresAt: expiresAt}, nil
}
