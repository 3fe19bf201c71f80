package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/localnerve/shopdb/internal/config"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/store"
	"github.com/localnerve/shopdb/internal/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored password hashes.
const PasswordCost = 10

// Claims is the access token payload.
type Claims struct {
	User models.Principal `json:"user"`
	jwt.RegisteredClaims
}

// RegisterInput is the registration payload. Every field is mandatory.
type RegisterInput struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Password    *string `json:"password"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// AuthService issues and validates access tokens and manages credentials.
type AuthService struct {
	store  store.Store
	secret []byte
	ttl    time.Duration
}

// NewAuthService builds the service from the token configuration.
func NewAuthService(st store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store:  st,
		secret: []byte(cfg.AccessTokenSecret),
		ttl:    cfg.AccessTokenTTL,
	}
}

// HashPassword hashes a clear password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", types.Internal(err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs an HS256 token carrying the principal.
func (s *AuthService) IssueToken(p models.Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		User: p,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", types.Internal(err)
	}
	return signed, nil
}

// ParseToken validates a token and returns its principal.
func (s *AuthService) ParseToken(token string) (*models.Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, types.Unauthenticated("Token expired")
		}
		return nil, types.Unauthenticated("User is not authorized")
	}
	return &claims.User, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// Register creates a user with the default role.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"email", in.Email},
		{"phoneNumber", in.PhoneNumber},
		{"password", in.Password},
	} {
		if !present(f.value) {
			return nil, types.MissingField(f.name)
		}
	}

	email := normalizeEmail(*in.Email)
	if !strings.Contains(email, "@") {
		return nil, types.Validation("Email is not valid")
	}

	_, err := s.store.Users().FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, types.Validation("Email already in use")
	case !types.IsType(err, types.TypeNotFound):
		return nil, err
	}

	role, err := store.FindRole(ctx, s.store, models.RoleUser)
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(*in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		RoleID:       role.RoleID,
		FirstName:    strings.TrimSpace(*in.FirstName),
		LastName:     strings.TrimSpace(*in.LastName),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(*in.PhoneNumber),
		PasswordHash: hash,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		// A concurrent registration won the unique index.
		if errors.Is(err, types.ErrDuplicate) {
			return nil, types.Validation("Email already in use")
		}
		return nil, err
	}

	logrus.WithField("userId", user.UserID).Info("User registered")
	return user, nil
}

// Login checks credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenResponse, error) {
	if !present(in.Email) {
		return nil, types.MissingField("email")
	}
	if !present(in.Password) {
		return nil, types.MissingField("password")
	}

	user, role, err := s.store.Users().Principal(ctx, normalizeEmail(*in.Email))
	if err != nil {
		if types.IsType(err, types.TypeNotFound) {
			return nil, types.Unauthenticated("Email or password is not valid")
		}
		return nil, err
	}
	if !VerifyPassword(user.PasswordHash, *in.Password) {
		return nil, types.Unauthenticated("Email or password is not valid")
	}

	token, err := s.IssueToken(models.Principal{
		ID:        user.UserID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      role,
	})
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: token}, nil
}
