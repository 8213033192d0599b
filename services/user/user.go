package user

import (
	"context"
	"fmt"
	"time"

	userRepo "servify/database/repository/user"
	"servify/models"
	"servify/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 24 * time.Hour

// UserService handles accounts and authentication. The rest of the system
// only consumes the resulting user ID and role.
type UserService interface {
	Register(name, email, password, role string) (*models.User, error)
	Authenticate(email, password string) (*models.User, string, error)
	GetByID(id string) (*models.User, error)
	VerifyTokenHash(id, tokenHash string) error
	RevokeToken(id string) error
	SetActive(id string, active bool) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
}

func (s *DefaultUserService) Register(name, email, password, role string) (*models.User, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	switch role {
	case models.RoleCustomer, models.RoleProvider:
	case "":
		role = models.RoleCustomer
	default:
		return nil, fmt.Errorf("unsupported role %q", role)
	}

	if existing, _ := s.Repo.GetByEmail(email); existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	record := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Authenticate verifies credentials and returns the user with a fresh JWT.
// The token hash is stored on the user and cached so revocation works.
func (s *DefaultUserService) Authenticate(email, password string) (*models.User, string, error) {
	record, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("invalid email or password")
	}
	if !record.IsActive {
		return nil, "", fmt.Errorf("account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(record.ID, record.Role, tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateTokenHash(record.ID, tokenHash); err != nil {
		return nil, "", err
	}
	if s.AuthCache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.AuthCache.Set(ctx, utils.AuthCachePrefix+record.ID, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Sugar().Warnf("failed to cache auth token for user %s: %v", record.ID, err)
		}
	}

	record.TokenHash = tokenHash
	return record, token, nil
}

func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}

// VerifyTokenHash checks a presented token hash against the user's current
// one, cache first and Mongo as fallback. A mismatch means the token was
// revoked or replaced by a newer login.
func (s *DefaultUserService) VerifyTokenHash(id, tokenHash string) error {
	if tokenHash == "" {
		return fmt.Errorf("token has been revoked")
	}

	if s.AuthCache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		cached, err := s.AuthCache.Get(ctx, utils.AuthCachePrefix+id).Result()
		if err == nil {
			if cached == tokenHash {
				return nil
			}
			return fmt.Errorf("token has been revoked")
		}
		if err != redis.Nil {
			utils.GetLogger().Sugar().Warnf("failed to read auth cache for user %s: %v", id, err)
		}
	}

	record, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if record.TokenHash == "" || record.TokenHash != tokenHash {
		return fmt.Errorf("token has been revoked")
	}

	if s.AuthCache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.AuthCache.Set(ctx, utils.AuthCachePrefix+id, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Sugar().Warnf("failed to cache auth token for user %s: %v", id, err)
		}
	}
	return nil
}

// RevokeToken invalidates the user's current token.
func (s *DefaultUserService) RevokeToken(id string) error {
	if err := s.Repo.UpdateTokenHash(id, ""); err != nil {
		return err
	}
	if s.AuthCache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+id).Err(); err != nil {
			utils.GetLogger().Sugar().Warnf("failed to evict auth cache for user %s: %v", id, err)
		}
	}
	return nil
}

func (s *DefaultUserService) SetActive(id string, active bool) error {
	return s.Repo.SetActive(id, active)
}
