package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type ApplyLeaveRequest struct {
	LeaveTypeID    string  `json:"leave_type_id" binding:"required,uuid"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        string  `json:"end_date" binding:"required"`
	Reason         string  `json:"reason" binding:"required,min=10,max=500"`
	IsHalfDay      bool    `json:"is_half_day"`
	HalfDaySession *string `json:"half_day_session" binding:"omitempty,oneof=AM PM"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required,min=10,max=500"`
}

type ListLeaveQuery struct {
	Status      string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	EmployeeID  string `form:"employee_id" binding:"omitempty,uuid"`
	LeaveTypeID string `form:"leave_type_id" binding:"omitempty,uuid"`
	From        string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To          string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type LeaveResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	EmployeeNumber  string          `json:"employee_number,omitempty"`
	Department      string          `json:"department,omitempty"`
	LeaveTypeID     string          `json:"leave_type_id"`
	LeaveTypeName   string          `json:"leave_type_name,omitempty"`
	LeaveTypeColor  string          `json:"leave_type_color,omitempty"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	TotalDays       decimal.Decimal `json:"total_days"`
	IsHalfDay       bool            `json:"is_half_day"`
	HalfDaySession  *string         `json:"half_day_session,omitempty"`
	Reason          string          `json:"reason"`
	Status          string          `json:"status"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	ApproverName    *string         `json:"approver_name,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type TypeUsageResponse struct {
	LeaveTypeID   string          `json:"leave_type_id"`
	LeaveTypeName string          `json:"leave_type_name"`
	Days          decimal.Decimal `json:"days"`
}

type StatsResponse struct {
	TotalRequests     int64               `json:"total_requests"`
	PendingRequests   int64               `json:"pending_requests"`
	ApprovedRequests  int64               `json:"approved_requests"`
	RejectedRequests  int64               `json:"rejected_requests"`
	DaysTakenThisYear decimal.Decimal     `json:"days_taken_this_year"`
	ByType            []TypeUsageResponse `json:"by_type"`
}
