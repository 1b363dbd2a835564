package repository

import (
	"context"
	"strings"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/job/dto"
	"github.com/Goodnessmbakara/skillsverse/pkg/database"
	"gorm.io/gorm"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	FindByID(ctx context.Context, id uint) (*entity.Job, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*entity.Job, error)
	FindAll(ctx context.Context, filter dto.JobFilter) ([]*entity.Job, error)
	FindByEmployer(ctx context.Context, employerID uint) ([]*entity.Job, error)
	FindByBlockchain(ctx context.Context, blockchain string) ([]*entity.Job, error)
	Count(ctx context.Context) (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(job).Error)
}

func (r *jobRepository) FindByID(ctx context.Context, id uint) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &job, nil
}

// FindByIDs returns the jobs in the order of ids, skipping ids that no longer
// exist.
func (r *jobRepository) FindByIDs(ctx context.Context, ids []uint) ([]*entity.Job, error) {
	if len(ids) == 0 {
		return []*entity.Job{}, nil
	}

	var jobs []*entity.Job
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*entity.Job, len(jobs))
	for _, job := range jobs {
		byID[job.ID] = job
	}
	ordered := make([]*entity.Job, 0, len(jobs))
	for _, id := range ids {
		if job, ok := byID[id]; ok {
			ordered = append(ordered, job)
		}
	}
	return ordered, nil
}

// search text is matched literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *jobRepository) FindAll(ctx context.Context, filter dto.JobFilter) ([]*entity.Job, error) {
	jobs := []*entity.Job{}
	query := r.db.WithContext(ctx).Order("id ASC")

	if filter.Blockchain != "" {
		query = query.Where("blockchain = ?", strings.ToLower(filter.Blockchain))
	}
	if filter.EmployerID != 0 {
		query = query.Where("employer_id = ?", filter.EmployerID)
	}
	if filter.Search != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
		query = query.Where(r.db.Where(`LOWER(title) LIKE ? ESCAPE '\'`, like).Or(`LOWER(company) LIKE ? ESCAPE '\'`, like))
	}

	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) FindByEmployer(ctx context.Context, employerID uint) ([]*entity.Job, error) {
	return r.FindAll(ctx, dto.JobFilter{EmployerID: employerID})
}

func (r *jobRepository) FindByBlockchain(ctx context.Context, blockchain string) ([]*entity.Job, error) {
	return r.FindAll(ctx, dto.JobFilter{Blockchain: blockchain})
}

func (r *jobRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Job{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
