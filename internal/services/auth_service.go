package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aurelhaus/backend/internal/config"
	"github.com/aurelhaus/backend/internal/models"
	"github.com/aurelhaus/backend/internal/store"
	"github.com/aurelhaus/backend/pkg/crypto"
	jwtpkg "github.com/aurelhaus/backend/pkg/jwt"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrUnknownUser and ErrInvalidCredential stay distinct so callers can
	// tell them apart; the HTTP layer collapses both into one message so
	// the response does not reveal which field was wrong.
	ErrUnknownUser       = errors.New("unknown username")
	ErrInvalidCredential = errors.New("password incorrect")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrTokenRevoked      = errors.New("token is revoked")
)

// AuthService is the session gate: registration, login, logout and token
// validation. Sessions are stateless JWTs; logout blacklists the token in
// redis until its natural expiry. When redis is unavailable the service
// degrades to accepting unexpired tokens.
type AuthService struct {
	users store.Users
	redis *redis.Client
	cfg   *config.Config
}

func NewAuthService(users store.Users, redisClient *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,
		redis: redisClient,
		cfg:   cfg,
	}
}

// Register creates a new user account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	hashedPassword, err := crypto.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Password: hashedPassword,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrUnknownUser
		}
		return "", nil, err
	}

	if !crypto.CheckPassword(password, user.Password) {
		return "", nil, ErrInvalidCredential
	}

	token, err := jwtpkg.GenerateToken(user.ID, jwtpkg.SessionToken, s.cfg.JWTSecret, s.cfg.JWTTokenDuration)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout revokes a session token by blacklisting it for its remaining
// lifetime. Idempotent: revoking an already-revoked or already-expired
// token succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := jwtpkg.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil {
		// Expired or malformed tokens have nothing left to revoke.
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if s.redis == nil {
		return nil
	}
	key := blacklistKey(token)
	if err := s.redis.Set(ctx, key, 1, ttl).Err(); err != nil {
		log.Printf("WARN: could not blacklist token in redis: %v", err)
	}
	return nil
}

// ValidateAccessToken validates a session token and returns its claims,
// rejecting revoked tokens.
func (s *AuthService) ValidateAccessToken(ctx context.Context, token string) (*jwtpkg.Claims, error) {
	claims, err := jwtpkg.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != jwtpkg.SessionToken {
		return nil, errors.New("invalid token type")
	}

	// If redis is down we allow the request to proceed.
	if s.redis != nil {
		exists, err := s.redis.Exists(ctx, blacklistKey(token)).Result()
		if err != nil {
			log.Printf("WARN: could not check token blacklist in redis: %v", err)
		} else if exists > 0 {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// GetUserByID retrieves a user by ID.
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// EnsureDefaultAdmin creates the configured admin account when the users
// table is empty, so it receives ID 1 and becomes the sole admin. A no-op
// when no admin credentials are configured or any account already exists.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	if s.cfg.AdminUsername == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err := s.Register(ctx, s.cfg.AdminUsername, s.cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}
	log.Printf("Created default admin account %q", s.cfg.AdminUsername)
	return nil
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:token:%s", token)
}
