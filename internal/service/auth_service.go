package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/apierror"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenDenylist records revoked tokens until their natural expiry.
// Backed by Redis in production.
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Claims is the JWT payload. Subject is the user's email.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	// Logout revokes the token for its remaining lifetime.
	Logout(ctx context.Context, token string) error
	// Verify parses and validates a token, rejecting revoked ones, and
	// returns the account it belongs to.
	Verify(ctx context.Context, token string) (*dto.VerifyResponse, error)
}

type authService struct {
	users    repository.UserRepository
	denylist TokenDenylist
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, denylist TokenDenylist, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:    users,
		denylist: denylist,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email %s already registered: %w", req.Email, apierror.ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = "pharmacist"
	}
	u := &model.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.respondWithToken(u)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", apierror.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", apierror.ErrUnauthorized)
	}
	return s.respondWithToken(u)
}

func (s *authService) respondWithToken(u *model.User) (*dto.AuthResponse, error) {
	now := time.Now()
	claims := Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Email:    u.Email,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
		Token:    token,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return fmt.Errorf("invalid token: %w", apierror.ErrUnauthorized)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, token, ttl)
}

func (s *authService) Verify(ctx context.Context, token string) (*dto.VerifyResponse, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", apierror.ErrUnauthorized)
	}
	revoked, err := s.denylist.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("token revoked: %w", apierror.ErrUnauthorized)
	}
	u, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("account no longer exists: %w", apierror.ErrUnauthorized)
	}
	return &dto.VerifyResponse{
		Email:    u.Email,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
	}, nil
}

func (s *authService) parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
