package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListFilter struct {
	EmployeeID  string
	LeaveTypeID string
	Status      string
	From        time.Time
	To          time.Time
	Page        int
	Limit       int
}

type Stats struct {
	Total    int64
	Pending  int64
	Approved int64
	Rejected int64
}

type TypeUsage struct {
	LeaveTypeID   string
	LeaveTypeName string
	Days          decimal.Decimal
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*RequestDetails, error)
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]RequestDetails, int64, error)
	UpdateDecision(ctx context.Context, id, status string, approvedBy string, rejectionReason *string) error
	UpdateStatus(ctx context.Context, id, status string) error
	CountByStatus(ctx context.Context, employeeID string) (Stats, error)
	DaysTakenInYear(ctx context.Context, employeeID string, year int) (decimal.Decimal, error)
	DaysByTypeInYear(ctx context.Context, employeeID string, year int) ([]TypeUsage, error)
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

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	query := `
        INSERT INTO leave_requests (
            id, employee_id, leave_type_id, start_date, end_date,
            total_days, is_half_day, half_day_session, reason, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `

	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		req.ID, req.EmployeeID, req.LeaveTypeID, req.StartDate, req.EndDate,
		req.TotalDays, req.IsHalfDay, req.HalfDaySession, req.Reason, req.Status,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*RequestDetails, error) {
	var row RequestDetails
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select(`leave_requests.*,
			employees.name AS employee_name,
			employees.employee_number AS employee_number,
			employees.department AS department,
			leave_types.name AS leave_type_name,
			leave_types.color AS leave_type_color,
			approvers.name AS approver_name`).
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Joins("JOIN leave_types ON leave_types.id = leave_requests.leave_type_id").
		Joins("LEFT JOIN employees approvers ON approvers.id = leave_requests.approved_by").
		Where("leave_requests.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// HasOverlapping reports whether the employee already has a pending or
// approved request whose date range touches [start, end].
func (r *repository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", start, end).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]RequestDetails, int64, error) {
	base := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if filter.EmployeeID != "" {
		base = base.Where("leave_requests.employee_id = ?", filter.EmployeeID)
	}
	if filter.LeaveTypeID != "" {
		base = base.Where("leave_requests.leave_type_id = ?", filter.LeaveTypeID)
	}
	if filter.Status != "" {
		base = base.Where("leave_requests.status = ?", filter.Status)
	}
	// Date filters match any request overlapping the window.
	if !filter.From.IsZero() {
		base = base.Where("leave_requests.end_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		base = base.Where("leave_requests.start_date <= ?", filter.To)
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

	var rows []RequestDetails
	err := base.
		Select(`leave_requests.*,
			employees.name AS employee_name,
			employees.employee_number AS employee_number,
			employees.department AS department,
			leave_types.name AS leave_type_name,
			leave_types.color AS leave_type_color,
			approvers.name AS approver_name`).
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Joins("JOIN leave_types ON leave_types.id = leave_requests.leave_type_id").
		Joins("LEFT JOIN employees approvers ON approvers.id = leave_requests.approved_by").
		Order("leave_requests.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateDecision moves a pending request to approved or rejected. The
// status guard in the WHERE clause makes concurrent decisions on the same
// request lose with sql.ErrNoRows instead of double-applying.
func (r *repository) UpdateDecision(ctx context.Context, id, status string, approvedBy string, rejectionReason *string) error {
	query := `
UPDATE leave_requests
SET status = $2, approved_by = $3, approved_at = NOW(),
    rejection_reason = $4, updated_at = NOW()
WHERE id = $1 AND status = $5
`

	exec := r.execer()
	res, err := exec.ExecContext(ctx, query, id, status, approvedBy, rejectionReason, StatusPending)
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

// UpdateStatus carries the same pending guard as UpdateDecision, so a
// cancel racing a decision loses with sql.ErrNoRows instead of
// overwriting the decided status.
func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) CountByStatus(ctx context.Context, employeeID string) (Stats, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	q := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}

	var counts []statusCount
	if err := q.Select("status, COUNT(*) AS count").Group("status").Scan(&counts).Error; err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case StatusPending:
			stats.Pending = c.Count
		case StatusApproved:
			stats.Approved = c.Count
		case StatusRejected:
			stats.Rejected = c.Count
		}
	}
	return stats, nil
}

// DaysTakenInYear sums approved days for the year. An empty employeeID
// sums across all employees.
func (r *repository) DaysTakenInYear(ctx context.Context, employeeID string, year int) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("SUM(total_days)").
		Where("status = ?", StatusApproved).
		Where("EXTRACT(YEAR FROM start_date) = ?", year)
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}

	var total decimal.NullDecimal
	err := q.Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// DaysByTypeInYear breaks approved days for the year down per leave type.
// An empty employeeID aggregates across all employees.
func (r *repository) DaysByTypeInYear(ctx context.Context, employeeID string, year int) ([]TypeUsage, error) {
	q := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select(`leave_requests.leave_type_id,
			leave_types.name AS leave_type_name,
			SUM(leave_requests.total_days) AS days`).
		Joins("JOIN leave_types ON leave_types.id = leave_requests.leave_type_id").
		Where("leave_requests.status = ?", StatusApproved).
		Where("EXTRACT(YEAR FROM leave_requests.start_date) = ?", year).
		Group("leave_requests.leave_type_id, leave_types.name").
		Order("leave_types.name")
	if employeeID != "" {
		q = q.Where("leave_requests.employee_id = ?", employeeID)
	}

	var rows []TypeUsage
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
