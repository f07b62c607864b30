package balance

import (
	"context"
	"database/sql"
	"time"

	"leavehub/internal/leavetype"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const daysInYear = 365

// ProRate returns the allotment for an employee joining during year: the
// full default when the joining date falls in an earlier year, otherwise
// round(default * daysRemaining / 365) counting the joining day itself.
func ProRate(defaultDays int, joining time.Time, year int) decimal.Decimal {
	if joining.Year() < year {
		return decimal.NewFromInt(int64(defaultDays))
	}

	daysRemaining := daysInYear - joining.YearDay() + 1
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	return decimal.NewFromInt(int64(defaultDays)).
		Mul(decimal.NewFromInt(int64(daysRemaining))).
		Div(decimal.NewFromInt(daysInYear)).
		Round(0)
}

// Allocator opens current-year ledger rows for a new employee, one per
// active leave type. It runs inside the employee-creation transaction.
//go:generate mockgen -source=allocator.go -destination=mock/allocator_mock.go -package=mock
type Allocator interface {
	AllocateForEmployee(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, joining time.Time) error
}

type allocator struct {
	balances   Repository
	leaveTypes leavetype.Repository
	logger     *zap.Logger
}

func NewAllocator(balances Repository, leaveTypes leavetype.Repository, logger ...*zap.Logger) Allocator {
	l := zap.L().Named("balance.allocator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.allocator")
	}
	return &allocator{balances: balances, leaveTypes: leaveTypes, logger: l}
}

func (a *allocator) AllocateForEmployee(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, joining time.Time) error {
	year := time.Now().UTC().Year()

	types, err := a.leaveTypes.FindAllActive(ctx)
	if err != nil {
		a.logger.Error("allocate balances list leave types failed", zap.Error(err))
		return err
	}

	repo := a.balances
	if tx != nil {
		repo = a.balances.WithTx(tx)
	}

	for _, lt := range types {
		b := &LeaveBalance{
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			LeaveTypeID: lt.ID,
			Year:        year,
			TotalDays:   ProRate(lt.DefaultDays, joining, year),
			UsedDays:    decimal.Zero,
		}
		if err := repo.Create(ctx, b); err != nil {
			a.logger.Error("allocate balance row failed",
				zap.String("employee_id", employeeID.String()),
				zap.String("leave_type_id", lt.ID.String()),
				zap.Error(err),
			)
			return err
		}
	}

	a.logger.Info("allocated leave balances",
		zap.String("employee_id", employeeID.String()),
		zap.Int("year", year),
		zap.Int("leave_types", len(types)),
	)
	return nil
}
