package holiday

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, h *PublicHoliday) error
	FindAllActive(ctx context.Context) ([]PublicHoliday, error)
	FindByYear(ctx context.Context, year int) ([]PublicHoliday, error)
	FindByID(ctx context.Context, id string) (*PublicHoliday, error)
	ExistsOnDate(ctx context.Context, date time.Time, excludeID *string) (bool, error)
	Update(ctx context.Context, h *PublicHoliday) error
	ActiveDatesBetween(ctx context.Context, start, end time.Time) ([]time.Time, error)
	IsActiveHoliday(ctx context.Context, date time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *PublicHoliday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindAllActive(ctx context.Context) ([]PublicHoliday, error) {
	var holidays []PublicHoliday
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByYear(ctx context.Context, year int) ([]PublicHoliday, error) {
	var holidays []PublicHoliday
	err := r.db.WithContext(ctx).
		Where("EXTRACT(YEAR FROM date) = ?", year).
		Where("is_active = ?", true).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PublicHoliday, error) {
	var h PublicHoliday
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) ExistsOnDate(ctx context.Context, date time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&PublicHoliday{}).
		Where("date = ?", date)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, h *PublicHoliday) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *repository) ActiveDatesBetween(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&PublicHoliday{}).
		Where("date BETWEEN ? AND ?", start, end).
		Where("is_active = ?", true).
		Order("date ASC").
		Pluck("date", &dates).Error
	return dates, err
}

func (r *repository) IsActiveHoliday(ctx context.Context, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PublicHoliday{}).
		Where("date = ?", date).
		Where("is_active = ?", true).
		Count(&count).Error
	return count > 0, err
}
