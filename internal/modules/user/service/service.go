package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/user/dto"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/user/repository"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
	"github.com/Goodnessmbakara/skillsverse/pkg/storage"
	"golang.org/x/crypto/bcrypt"
)

const (
	avatarFolder = "avatars"
	// matches the binding rule, which sees the untrimmed value
	minUsernameLength = 3
)

type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*entity.User, error)
	GetUser(ctx context.Context, id uint) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateReputation(ctx context.Context, id uint, points int) (*entity.User, error)
	UploadAvatar(ctx context.Context, id uint, avatar dto.AvatarFile) (*entity.User, error)
}

type userService struct {
	repo         repository.UserRepository
	imageStorage storage.ImageStorage
}

// NewUserService builds the service. imageStorage may be nil, in which case
// avatar uploads report the feature as unavailable.
func NewUserService(repo repository.UserRepository, imageStorage storage.ImageStorage) UserService {
	return &userService{repo: repo, imageStorage: imageStorage}
}

var errUsernameTaken = apperror.New(http.StatusConflict, "Username already exists", apperror.ErrConflict)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*entity.User, error) {
	username := strings.TrimSpace(req.Username)
	if utf8.RuneCountInString(username) < minUsernameLength {
		return nil, apperror.Invalid(fmt.Sprintf("username must be at least %d characters", minUsernameLength))
	}

	if existing, err := s.repo.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, errUsernameTaken
	} else if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:      username,
		PasswordHash:  string(hash),
		Name:          req.Name,
		Bio:           req.Bio,
		Skills:        req.Skills,
		Experience:    req.Experience,
		Avatar:        req.Avatar,
		Type:          req.Type,
		WalletAddress: req.WalletAddress,
	}

	// Concurrent creates can both pass the lookup; the unique index rejects
	// the second one.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, errUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *userService) UpdateReputation(ctx context.Context, id uint, points int) (*entity.User, error) {
	user, err := s.repo.AddReputation(ctx, id, points)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *userService) UploadAvatar(ctx context.Context, id uint, avatar dto.AvatarFile) (*entity.User, error) {
	if s.imageStorage == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "Avatar uploads are not configured", apperror.ErrUnavailable)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, avatarFolder, avatar.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.repo.SetAvatar(ctx, id, url); err != nil {
		if delErr := s.imageStorage.DeleteImage(ctx, url); delErr != nil {
			log.Printf("failed to delete orphaned avatar for user %d: %v", id, delErr)
		}
		return nil, notFound(err)
	}

	if user.Avatar != "" {
		if err := s.imageStorage.DeleteImage(ctx, user.Avatar); err != nil {
			log.Printf("failed to delete previous avatar for user %d: %v", id, err)
		}
	}

	user.Avatar = url
	return user, nil
}

func notFound(err error) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NotFound("User not found")
	}
	return err
}
