package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/config"
	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/repository"
)

// AuthBridge is the narrow credential-lifecycle contract the profile
// services consume. DeleteUser doubles as the compensating action when a
// profile create fails after its credential was already registered.
type AuthBridge interface {
	Register(ctx context.Context, username, password string, role model.Role) error
	Login(ctx context.Context, username, password string) (string, *model.Account, error)
	DeleteUser(ctx context.Context, username string) error
	ChangePassword(ctx context.Context, username, current, next string) error
}

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	AccountID int64      `json:"account_id"`
	Role      model.Role `json:"role"`
}

// AuthService implements AuthBridge on the accounts table, with JWTs for
// transport and a Redis session registry so logout and password changes
// invalidate outstanding tokens.
type AuthService struct {
	cfg      *config.Config
	accounts *repository.AccountRepository
	rdb      *redis.Client
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, accounts *repository.AccountRepository, rdb *redis.Client) *AuthService {
	return &AuthService{cfg: cfg, accounts: accounts, rdb: rdb}
}

func sessionKey(accountID int64) string {
	return "session:account:" + strconv.FormatInt(accountID, 10)
}

// Register creates a credential for a username with the given role.
func (s *AuthService) Register(ctx context.Context, username, password string, role model.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account := &model.Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	return s.accounts.Create(ctx, account)
}

// Login checks the credential and returns a signed JWT plus the account.
// A new login supersedes any previous session for the same account.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   account.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		AccountID: account.ID,
		Role:      account.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKey(account.ID), jti, s.cfg.JWTExpiry).Err(); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	return signed, account, nil
}

// DeleteUser removes a credential by username.
func (s *AuthService) DeleteUser(ctx context.Context, username string) error {
	return s.accounts.Delete(ctx, username)
}

// ChangePassword verifies the current password, stores the new hash and
// invalidates the active session so outstanding tokens stop working.
func (s *AuthService) ChangePassword(ctx context.Context, username, current, next string) error {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(current)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.accounts.UpdatePassword(ctx, username, string(hash)); err != nil {
		return err
	}

	return s.rdb.Del(ctx, sessionKey(account.ID)).Err()
}

// Logout invalidates an account's active session.
func (s *AuthService) Logout(ctx context.Context, accountID int64) error {
	return s.rdb.Del(ctx, sessionKey(accountID)).Err()
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateSession checks that the token's JTI matches the active session.
func (s *AuthService) ValidateSession(ctx context.Context, accountID int64, jti string) error {
	stored, err := s.rdb.Get(ctx, sessionKey(accountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return errors.New("no active session")
		}
		return fmt.Errorf("check session: %w", err)
	}
	if stored != jti {
		return errors.New("session superseded")
	}
	return nil
}
