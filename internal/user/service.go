package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/luu-sac/ceramics-api/internal/apperr"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "auth").Logger()

const (
	tokenTTL      = 7 * 24 * time.Hour
	resetTokenTTL = time.Hour
)

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenStore keeps short-lived password-reset tokens. Backed by Redis in
// production, by a map in tests.
type TokenStore interface {
	SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

type Service struct {
	repo      Repository
	tokens    TokenStore
	jwtSecret []byte
}

func NewService(repo Repository, tokens TokenStore, jwtSecret string) *Service {
	return &Service{repo: repo, tokens: tokens, jwtSecret: []byte(jwtSecret)}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, apperr.BadRequest("email, password and name are required")
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperr.Conflict("user already exists")
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}
	u := &User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         RoleUser,
		Avatar:       req.Avatar,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrAlreadyExist) {
			return nil, apperr.Conflict("user already exists")
		}
		return nil, apperr.Internal("create user", err)
	}
	return s.issueToken(u)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if !CheckPassword(u.PasswordHash, req.Password) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return s.issueToken(u)
}

// ForgotPassword stores a one-hour reset token. Mail delivery is an external
// collaborator; the token is logged so an operator can relay it.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return apperr.NotFound("user not found")
	}
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return apperr.Internal("generate reset token", err)
	}
	token := hex.EncodeToString(buf)
	if err := s.tokens.SaveResetToken(ctx, token, u.ID, resetTokenTTL); err != nil {
		return apperr.Internal("store reset token", err)
	}
	logger.Info().Str("email", email).Str("token", token).Msg("password reset token issued")
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if req.Token == "" || req.NewPassword == "" {
		return apperr.BadRequest("token and newPassword are required")
	}
	userID, err := s.tokens.ConsumeResetToken(ctx, req.Token)
	if err != nil {
		return apperr.BadRequest("invalid or expired token")
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Internal("hash password", err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return apperr.Internal("update password", err)
	}
	return nil
}

func (s *Service) issueToken(u *User) (*AuthResponse, error) {
	claims := &Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tkn.SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperr.Internal("sign token", err)
	}
	return &AuthResponse{Token: signed, User: u.Public()}, nil
}

// ParseToken validates a bearer token and returns its claims.
func (s *Service) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.Unauthorized("invalid token")
	}
	return claims, nil
}
