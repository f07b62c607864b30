package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

const (
	SessionMorning   = "AM"
	SessionAfternoon = "PM"
)

type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`

	StartDate time.Time       `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time       `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	TotalDays decimal.Decimal `gorm:"type:numeric(5,1);not null"`

	IsHalfDay      bool    `gorm:"not null;default:false"`
	HalfDaySession *string `gorm:"type:varchar(2)"`

	Reason string `gorm:"type:text;not null"`
	Status string `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_status"`

	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequestDetails carries the joined display columns for list and detail
// reads.
type RequestDetails struct {
	LeaveRequest
	EmployeeName   string
	EmployeeNumber string
	Department     string
	LeaveTypeName  string
	LeaveTypeColor string
	ApproverName   *string
}
