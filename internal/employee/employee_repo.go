package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type ListFilter struct {
	Search     string
	Department string
	Page       int
	Limit      int
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	EmailExists(ctx context.Context, email string, excludeID *string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	Update(ctx context.Context, e *Employee) error
	Deactivate(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	CountActive(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	query := `
        INSERT INTO employees (
            id, employee_number, name, email, password_hash,
            gender, department, role, joining_date, is_active
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `

	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		e.ID, e.EmployeeNumber, e.Name, e.Email, e.PasswordHash,
		e.Gender, e.Department, e.Role, e.JoiningDate, e.IsActive,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) EmailExists(ctx context.Context, email string, excludeID *string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("LOWER(email) = LOWER(?)", email)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Employee, int64, error) {
	base := r.db.WithContext(ctx).Model(&Employee{}).Where("is_active = ?", true)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("name ILIKE ? OR email ILIKE ? OR employee_number ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Department != "" {
		base = base.Where("department = ?", filter.Department)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var employees []Employee
	err := base.
		Order("employee_number ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"name":       e.Name,
			"email":      e.Email,
			"gender":     e.Gender,
			"department": e.Department,
			"role":       e.Role,
		}).Error
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
