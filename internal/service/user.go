package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/pageza/cookbook/backend/internal/apperror"
	"github.com/pageza/cookbook/backend/internal/models"
	"gorm.io/gorm"
)

const maxUsernameLength = 100

// VerificationFailedMessage is the single message returned for every failed credential check
const VerificationFailedMessage = "username or password not verified"

type UserService struct {
	db     *gorm.DB
	hasher *PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(db *gorm.DB, hasher *PasswordHasher) *UserService {
	return &UserService{
		db:     db,
		hasher: hasher,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, apperror.FromDB(err, "user", id)
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFoundBy("user", "username", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %q: %w", username, err)
	}
	return &user, nil
}

// Register creates a user. A taken username is reported by the unique index, never by a prior lookup.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, usernameTaken(username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[UserService] Registered user %d (%s)", user.ID, user.Username)
	return &user, nil
}

// Verify checks a username/password pair. Unknown usernames and wrong passwords
// produce the same error, and both paths run a bcrypt comparison.
func (s *UserService) Verify(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = s.hasher.Compare(s.dummy(), password)
		return nil, apperror.Unauthorized(VerificationFailedMessage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user for verification: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return nil, apperror.Unauthorized(VerificationFailedMessage)
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces the password and, when username is non-empty, renames the user.
// It returns the user as stored after the update.
func (s *UserService) UpdateUser(ctx context.Context, id uint, username, password string) (*models.User, error) {
	updates := map[string]interface{}{}
	if strings.TrimSpace(username) != "" {
		name, err := normalizeUsername(username)
		if err != nil {
			return nil, err
		}
		updates["username"] = name
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	updates["password_hash"] = hash

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, usernameTaken(updates["username"])
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}

	log.Printf("[UserService] Updated user %d", id)
	return s.GetUser(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("user", id)
	}
	log.Printf("[UserService] Deleted user %d", id)
	return nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("cookbook-unknown-user")
		if err != nil {
			log.Printf("[UserService] Failed to prepare dummy hash: %v", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", apperror.ValidationFailed("username", "username is required")
	}
	if len(username) > maxUsernameLength {
		return "", apperror.ValidationFailed("username", fmt.Sprintf("username must be %d characters or fewer", maxUsernameLength))
	}
	return username, nil
}

func usernameTaken(username any) error {
	return apperror.Conflict("username", fmt.Sprintf("username %v is already taken", username))
}
