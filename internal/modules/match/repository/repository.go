package repository

import (
	"context"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
	"github.com/Goodnessmbakara/skillsverse/pkg/database"
	"gorm.io/gorm"
)

type MatchRepository interface {
	Create(ctx context.Context, match *entity.Match) error
	FindByID(ctx context.Context, id uint) (*entity.Match, error)
	FindByUser(ctx context.Context, userID uint) ([]*entity.Match, error)
	FindByJob(ctx context.Context, jobID uint) ([]*entity.Match, error)
	UpdateStatus(ctx context.Context, id uint, from, to entity.MatchStatus) (*entity.Match, error)
	CountByStatus(ctx context.Context) (map[entity.MatchStatus]int64, error)
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *entity.Match) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(match).Error)
}

func (r *matchRepository) FindByID(ctx context.Context, id uint) (*entity.Match, error) {
	var match entity.Match
	if err := r.db.WithContext(ctx).First(&match, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &match, nil
}

func (r *matchRepository) FindByUser(ctx context.Context, userID uint) ([]*entity.Match, error) {
	matches := []*entity.Match{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) FindByJob(ctx context.Context, jobID uint) ([]*entity.Match, error) {
	matches := []*entity.Match{}
	if err := r.db.WithContext(ctx).Where("job_id = ?", jobID).Order("id ASC").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// UpdateStatus writes only the status column and only while the match is
// still in status from. It never inserts; an unknown id, or a match that
// moved on concurrently, yields apperror.ErrNotFound.
func (r *matchRepository) UpdateStatus(ctx context.Context, id uint, from, to entity.MatchStatus) (*entity.Match, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Match{}).
		Where("id = ? AND status = ?", id, from).
		UpdateColumn("status", to)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperror.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// CountByStatus groups every match by status. Statuses with no rows are
// absent from the map.
func (r *matchRepository) CountByStatus(ctx context.Context) (map[entity.MatchStatus]int64, error) {
	var rows []struct {
		Status entity.MatchStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Match{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.MatchStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
