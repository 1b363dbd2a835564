package repository

import (
	"context"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
	"github.com/Goodnessmbakara/skillsverse/pkg/database"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	AddReputation(ctx context.Context, id uint, points int) (*entity.User, error)
	SetAvatar(ctx context.Context, id uint, avatarURL string) error
	Count(ctx context.Context) (int64, error)
	TopByReputation(ctx context.Context, limit int, accountType entity.AccountType) ([]*entity.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create returns apperror.ErrConflict when the username is taken.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

// AddReputation increments in SQL so concurrent updates never lose points.
func (r *userRepository) AddReputation(ctx context.Context, id uint, points int) (*entity.User, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		UpdateColumn("reputation", gorm.Expr("reputation + ?", points))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperror.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) SetAvatar(ctx context.Context, id uint, avatarURL string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		UpdateColumn("avatar", avatarURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TopByReputation orders by reputation, oldest account first on ties. An
// empty accountType includes both kinds.
func (r *userRepository) TopByReputation(ctx context.Context, limit int, accountType entity.AccountType) ([]*entity.User, error) {
	query := r.db.WithContext(ctx).Order("reputation DESC").Order("id ASC").Limit(limit)
	if accountType != "" {
		query = query.Where("type = ?", accountType)
	}

	users := make([]*entity.User, 0, limit)
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
