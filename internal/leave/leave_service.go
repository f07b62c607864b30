package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"leavehub/internal/authz"
	"leavehub/internal/balance"
	"leavehub/internal/employee"
	"leavehub/internal/events"
	"leavehub/internal/holiday"
	leaveerrors "leavehub/internal/leave/errors"
	"leavehub/internal/leavetype"
	leavetypeerrors "leavehub/internal/leavetype/errors"
	"leavehub/internal/messaging/kafka"
	"leavehub/internal/shared/contextutil"
	"leavehub/internal/workday"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, id, approverID string) (LeaveResponse, error)
	Reject(ctx context.Context, id, approverID string, req RejectLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, id, requesterID, role string) error
	GetAll(ctx context.Context, requesterID, role string, q ListLeaveQuery) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, id, requesterID, role string) (LeaveResponse, error)
	Stats(ctx context.Context, requesterID, role string) (StatsResponse, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	employeeRepo  employee.Repository
	leaveTypeRepo leavetype.Repository
	holidayRepo   holiday.Repository
	balanceRepo   balance.Repository
	outboxRepo    kafka.OutboxRepository
	logger        *zap.Logger
	now           func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	leaveTypeRepo leavetype.Repository,
	holidayRepo holiday.Repository,
	balanceRepo balance.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		employeeRepo:  employeeRepo,
		leaveTypeRepo: leaveTypeRepo,
		holidayRepo:   holidayRepo,
		balanceRepo:   balanceRepo,
		outboxRepo:    outboxRepo,
		logger:        l,
		now:           time.Now,
	}
}

func (s *service) Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	typeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveTypeID
	}

	start, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	today := s.today()
	if start.Before(today) {
		return LeaveResponse{}, leaveerrors.ErrPastDate
	}

	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		s.logger.Error("apply leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !emp.IsActive {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}
	if start.Before(dateOnly(emp.JoiningDate)) {
		return LeaveResponse{}, leaveerrors.ErrBeforeJoiningDate
	}

	lt, err := s.leaveTypeRepo.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		s.logger.Error("apply leave type lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !lt.IsActive {
		return LeaveResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
	}

	if req.IsHalfDay {
		if err := s.checkHalfDay(ctx, start, end, req.HalfDaySession, lt.Category); err != nil {
			return LeaveResponse{}, err
		}
	}

	overlap, err := s.repo.HasOverlapping(ctx, employeeID, start, end)
	if err != nil {
		s.logger.Error("apply leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	totalDays, err := s.computeTotalDays(ctx, start, end, req.IsHalfDay)
	if err != nil {
		return LeaveResponse{}, err
	}

	switch lt.Category {
	case leavetype.CategoryMaternity:
		if emp.Gender != employee.GenderFemale {
			return LeaveResponse{}, leaveerrors.ErrMaternityFemaleOnly
		}
	case leavetype.CategoryPaternity:
		if emp.Gender != employee.GenderMale {
			return LeaveResponse{}, leaveerrors.ErrPaternityMaleOnly
		}
	}

	if lt.Category != leavetype.CategoryUnpaid {
		bal, err := s.balanceRepo.FindByEmployeeTypeYear(ctx, employeeID, req.LeaveTypeID, start.Year())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LeaveResponse{}, leaveerrors.ErrBalanceNotFound
			}
			s.logger.Error("apply leave balance lookup failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if bal.Remaining().LessThan(totalDays) {
			return LeaveResponse{}, leaveerrors.InsufficientBalance(bal.Remaining(), lt.Name)
		}
	}

	lr := &LeaveRequest{
		ID:             uuid.New(),
		EmployeeID:     empUUID,
		LeaveTypeID:    typeUUID,
		StartDate:      start,
		EndDate:        end,
		TotalDays:      totalDays,
		IsHalfDay:      req.IsHalfDay,
		HalfDaySession: req.HalfDaySession,
		Reason:         strings.TrimSpace(req.Reason),
		Status:         StatusPending,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, lr); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.String("request_id", lr.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", lt.Name),
		zap.String("total_days", totalDays.String()),
	)

	resp := mapToResponse(RequestDetails{
		LeaveRequest:   *lr,
		EmployeeName:   emp.Name,
		EmployeeNumber: emp.EmployeeNumber,
		Department:     emp.Department,
		LeaveTypeName:  lt.Name,
		LeaveTypeColor: lt.Color,
	})
	return resp, nil
}

func (s *service) checkHalfDay(ctx context.Context, start, end time.Time, session *string, category string) error {
	if !start.Equal(end) {
		return leaveerrors.ErrHalfDayMultipleDays
	}
	if category == leavetype.CategoryMaternity || category == leavetype.CategoryPaternity {
		return leaveerrors.ErrHalfDayNotAllowedForType
	}
	if !workday.IsWeekday(start) {
		return leaveerrors.ErrHalfDayNonWorkingDay
	}
	isHoliday, err := s.holidayRepo.IsActiveHoliday(ctx, start)
	if err != nil {
		s.logger.Error("half-day holiday check failed", zap.Error(err))
		return err
	}
	if isHoliday {
		return leaveerrors.ErrHalfDayOnHoliday
	}
	if session == nil || (*session != SessionMorning && *session != SessionAfternoon) {
		return leaveerrors.ErrHalfDaySessionRequired
	}
	return nil
}

func (s *service) computeTotalDays(ctx context.Context, start, end time.Time, isHalfDay bool) (decimal.Decimal, error) {
	if isHalfDay {
		return decimal.NewFromFloat(0.5), nil
	}

	holidays, err := s.holidayRepo.ActiveDatesBetween(ctx, start, end)
	if err != nil {
		s.logger.Error("holiday lookup failed", zap.Error(err))
		return decimal.Zero, err
	}
	days, err := workday.Count(start, end, holidays)
	if err != nil {
		return decimal.Zero, leaveerrors.ErrNoWorkingDays
	}
	if days <= 0 {
		return decimal.Zero, leaveerrors.ErrNoWorkingDays
	}
	return decimal.NewFromInt(int64(days)), nil
}

func (s *service) Approve(ctx context.Context, id, approverID string) (LeaveResponse, error) {
	details, err := s.findRequest(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if details.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.AlreadyProcessed(details.Status)
	}

	lt, err := s.leaveTypeRepo.FindByID(ctx, details.LeaveTypeID.String())
	if err != nil {
		s.logger.Error("approve leave type lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	year := details.StartDate.Year()
	employeeID := details.EmployeeID.String()

	if lt.Category != leavetype.CategoryUnpaid {
		bal, err := s.balanceRepo.FindByEmployeeTypeYear(ctx, employeeID, details.LeaveTypeID.String(), year)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LeaveResponse{}, leaveerrors.ErrBalanceNotFound
			}
			s.logger.Error("approve balance lookup failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if bal.Remaining().LessThan(details.TotalDays) {
			return LeaveResponse{}, leaveerrors.InsufficientBalance(bal.Remaining(), lt.Name)
		}
		if err := s.balanceRepo.WithTx(tx).IncrementUsed(ctx, employeeID, details.LeaveTypeID.String(), year, details.TotalDays); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// The row exists, so a zero-row UPDATE means a concurrent
				// approval drained the balance first.
				return LeaveResponse{}, leaveerrors.InsufficientBalance(bal.Remaining(), lt.Name)
			}
			s.logger.Error("approve balance debit failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := s.repo.WithTx(tx).UpdateDecision(ctx, id, StatusApproved, approverID, nil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LeaveResponse{}, s.concurrentDecisionError(ctx, id)
		}
		s.logger.Error("approve status update failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueueDecisionEvent(ctx, tx, details, StatusApproved, approverID); err != nil {
		s.logger.Error("approve outbox enqueue failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request approved",
		zap.String("request_id", id),
		zap.String("approver_id", approverID),
		zap.String("total_days", details.TotalDays.String()),
	)

	return s.GetByID(ctx, id, approverID, authz.RoleHR)
}

func (s *service) Reject(ctx context.Context, id, approverID string, req RejectLeaveRequest) (LeaveResponse, error) {
	reason := strings.TrimSpace(req.RejectionReason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	if len(reason) < 10 {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonTooShort
	}

	details, err := s.findRequest(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if details.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.AlreadyProcessed(details.Status)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdateDecision(ctx, id, StatusRejected, approverID, &reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LeaveResponse{}, s.concurrentDecisionError(ctx, id)
		}
		s.logger.Error("reject status update failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueueDecisionEvent(ctx, tx, details, StatusRejected, approverID); err != nil {
		s.logger.Error("reject outbox enqueue failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request rejected",
		zap.String("request_id", id),
		zap.String("approver_id", approverID),
	)

	return s.GetByID(ctx, id, approverID, authz.RoleHR)
}

func (s *service) Cancel(ctx context.Context, id, requesterID, role string) error {
	details, err := s.findRequest(ctx, id)
	if err != nil {
		return err
	}
	if role != authz.RoleHR && details.EmployeeID.String() != requesterID {
		return leaveerrors.ErrCancelOwnRequestsOnly
	}
	if details.Status != StatusPending {
		return leaveerrors.CannotCancel(details.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			current, findErr := s.repo.FindByID(ctx, id)
			if findErr != nil {
				return leaveerrors.CannotCancel("processed")
			}
			return leaveerrors.CannotCancel(current.Status)
		}
		s.logger.Error("cancel status update failed", zap.Error(err))
		return err
	}

	s.logger.Info("leave request cancelled",
		zap.String("request_id", id),
		zap.String("requester_id", requesterID),
	)
	return nil
}

func (s *service) GetAll(ctx context.Context, requesterID, role string, q ListLeaveQuery) ([]LeaveResponse, int64, error) {
	filter := ListFilter{
		EmployeeID:  q.EmployeeID,
		LeaveTypeID: q.LeaveTypeID,
		Status:      q.Status,
		Page:        q.Page,
		Limit:       q.Limit,
	}
	if q.From != "" {
		from, err := time.ParseInLocation(dateLayout, q.From, time.UTC)
		if err != nil {
			return nil, 0, leaveerrors.ErrInvalidDateFormat
		}
		filter.From = from
	}
	if q.To != "" {
		to, err := time.ParseInLocation(dateLayout, q.To, time.UTC)
		if err != nil {
			return nil, 0, leaveerrors.ErrInvalidDateFormat
		}
		filter.To = to
	}
	// Non-HR callers only ever see their own requests.
	if role != authz.RoleHR {
		filter.EmployeeID = requesterID
	}

	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list leave requests failed", zap.Error(err))
		return nil, 0, err
	}

	responses := make([]LeaveResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, mapToResponse(row))
	}
	return responses, total, nil
}

func (s *service) GetByID(ctx context.Context, id, requesterID, role string) (LeaveResponse, error) {
	details, err := s.findRequest(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if role != authz.RoleHR && details.EmployeeID.String() != requesterID {
		return LeaveResponse{}, leaveerrors.ErrViewOwnRequestsOnly
	}
	return mapToResponse(*details), nil
}

func (s *service) Stats(ctx context.Context, requesterID, role string) (StatsResponse, error) {
	scope := requesterID
	if role == authz.RoleHR {
		scope = ""
	}

	stats, err := s.repo.CountByStatus(ctx, scope)
	if err != nil {
		s.logger.Error("leave stats count failed", zap.Error(err))
		return StatsResponse{}, err
	}
	year := s.now().UTC().Year()
	taken, err := s.repo.DaysTakenInYear(ctx, scope, year)
	if err != nil {
		s.logger.Error("leave stats sum failed", zap.Error(err))
		return StatsResponse{}, err
	}
	usage, err := s.repo.DaysByTypeInYear(ctx, scope, year)
	if err != nil {
		s.logger.Error("leave stats type breakdown failed", zap.Error(err))
		return StatsResponse{}, err
	}

	byType := make([]TypeUsageResponse, 0, len(usage))
	for _, u := range usage {
		byType = append(byType, TypeUsageResponse{
			LeaveTypeID:   u.LeaveTypeID,
			LeaveTypeName: u.LeaveTypeName,
			Days:          u.Days,
		})
	}

	return StatsResponse{
		TotalRequests:     stats.Total,
		PendingRequests:   stats.Pending,
		ApprovedRequests:  stats.Approved,
		RejectedRequests:  stats.Rejected,
		DaysTakenThisYear: taken,
		ByType:            byType,
	}, nil
}

func (s *service) findRequest(ctx context.Context, id string) (*RequestDetails, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	details, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("leave request lookup failed", zap.Error(err))
		return nil, err
	}
	return details, nil
}

// concurrentDecisionError re-reads the request after a guarded UPDATE
// matched no rows, so the caller sees the status that won.
func (s *service) concurrentDecisionError(ctx context.Context, id string) error {
	details, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return leaveerrors.AlreadyProcessed("processed")
	}
	return leaveerrors.AlreadyProcessed(details.Status)
}

func (s *service) enqueueDecisionEvent(ctx context.Context, tx *sql.Tx, details *RequestDetails, status, decidedBy string) error {
	event := events.LeaveDecidedEvent{
		EventType:   "leave." + status,
		RequestID:   details.ID.String(),
		EmployeeID:  details.EmployeeID.String(),
		LeaveTypeID: details.LeaveTypeID.String(),
		Status:      status,
		TotalDays:   details.TotalDays.String(),
		DecidedBy:   decidedBy,
		OccurredAt:  s.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   details.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) today() time.Time {
	return dateOnly(s.now().UTC())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mapToResponse(row RequestDetails) LeaveResponse {
	resp := LeaveResponse{
		ID:              row.ID.String(),
		EmployeeID:      row.EmployeeID.String(),
		EmployeeName:    row.EmployeeName,
		EmployeeNumber:  row.EmployeeNumber,
		Department:      row.Department,
		LeaveTypeID:     row.LeaveTypeID.String(),
		LeaveTypeName:   row.LeaveTypeName,
		LeaveTypeColor:  row.LeaveTypeColor,
		StartDate:       row.StartDate.Format(dateLayout),
		EndDate:         row.EndDate.Format(dateLayout),
		TotalDays:       row.TotalDays,
		IsHalfDay:       row.IsHalfDay,
		HalfDaySession:  row.HalfDaySession,
		Reason:          row.Reason,
		Status:          row.Status,
		ApproverName:    row.ApproverName,
		ApprovedAt:      row.ApprovedAt,
		RejectionReason: row.RejectionReason,
		CreatedAt:       row.CreatedAt,
	}
	if row.ApprovedBy != nil {
		id := row.ApprovedBy.String()
		resp.ApprovedBy = &id
	}
	return resp
}
