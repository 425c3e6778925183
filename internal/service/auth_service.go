package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shikshahq/school-console-api/internal/models"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
)

// AuthConfig defines the single seeded administrator account and token
// settings. There is no user table; the console has exactly one operator.
type AuthConfig struct {
	AdminEmail        string
	AdminPasswordHash string
	Secret            string
	Expiry            time.Duration
	Issuer            string
}

// AuthService authenticates the seeded admin and issues access tokens.
type AuthService struct {
	config    AuthConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(config AuthConfig, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{config: config, validator: validate, logger: logger}
}

// Login verifies credentials against the seeded admin and returns a signed
// token. Email mismatch and password mismatch are indistinguishable to the
// caller.
func (s *AuthService) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	if req.Email != s.config.AdminEmail {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	token, expiresAt, err := s.issueToken(req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	s.logger.Info("admin logged in", zap.String("email", req.Email))
	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
	}, nil
}

// ValidateToken parses and validates an access token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) issueToken(email string) (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.Expiry)
	claims := &models.TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
