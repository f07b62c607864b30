package balance

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BalanceWithType struct {
	LeaveBalance
	LeaveTypeName     string
	LeaveTypeColor    string
	LeaveTypeCategory string
}

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	FindByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	IncrementUsed(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]BalanceWithType, error)
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

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	query := `
        INSERT INTO leave_balances (id, employee_id, leave_type_id, year, total_days, used_days)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		b.ID, b.EmployeeID, b.LeaveTypeID, b.Year, b.TotalDays, b.UsedDays,
	)
	return err
}

func (r *repository) FindByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&b).Error
	return &b, err
}

// IncrementUsed is the only write path for used_days. A single atomic
// UPDATE so the database serializes concurrent approvals of different
// requests against the same row.
func (r *repository) IncrementUsed(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	// The guard keeps used_days within total_days even when two approvals
	// race; the losing UPDATE matches zero rows.
	query := `
UPDATE leave_balances
SET used_days = used_days + $4, updated_at = NOW()
WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
  AND used_days + $4 <= total_days
`

	exec := r.execer()
	res, err := exec.ExecContext(ctx, query, employeeID, leaveTypeID, year, days)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]BalanceWithType, error) {
	var rows []BalanceWithType
	err := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Select(`leave_balances.*,
			leave_types.name AS leave_type_name,
			leave_types.color AS leave_type_color,
			leave_types.category AS leave_type_category`).
		Joins("JOIN leave_types ON leave_types.id = leave_balances.leave_type_id").
		Where("leave_balances.employee_id = ?", employeeID).
		Where("leave_balances.year = ?", year).
		Where("leave_types.is_active = ?", true).
		Order("leave_types.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
