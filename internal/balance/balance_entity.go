package balance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance is the per (employee, leave type, year) ledger row.
// UsedDays only ever grows, and only through request approval.
type LeaveBalance struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_leave_balances_key"`
	LeaveTypeID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_leave_balances_key"`
	Year        int             `gorm:"type:int;not null;uniqueIndex:idx_leave_balances_key"`
	TotalDays   decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	UsedDays    decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b LeaveBalance) Remaining() decimal.Decimal {
	return b.TotalDays.Sub(b.UsedDays)
}
