package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"leavehub/internal/authz"
	"leavehub/internal/balance"
	mock_balance "leavehub/internal/balance/mock"
	"leavehub/internal/employee"
	mock_employee "leavehub/internal/employee/mock"
	mock_holiday "leavehub/internal/holiday/mock"
	"leavehub/internal/leave"
	leaveerrors "leavehub/internal/leave/errors"
	mock_leave "leavehub/internal/leave/mock"
	"leavehub/internal/leavetype"
	leavetypeerrors "leavehub/internal/leavetype/errors"
	mock_leavetype "leavehub/internal/leavetype/mock"
	"leavehub/internal/messaging/kafka"
	mock_kafka "leavehub/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func balanceKey(employeeID, leaveTypeID string) string { return employeeID + "/" + leaveTypeID }

// leaveServiceDeps backs the default mock stubs with scenario state so
// individual tests only tweak the rows they care about.
type leaveServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leave.Service

	requests     map[string]*leave.RequestDetails
	employeeRows map[string]*employee.Employee
	typeRows     map[string]*leavetype.LeaveType
	balanceRows  map[string]*balance.LeaveBalance

	overlapping bool
	// decisionDuringCancel simulates a decision landing between Cancel's
	// pending pre-check and its guarded status UPDATE.
	decisionDuringCancel string
	holidayDates         []time.Time
	isHoliday    bool
	stats        leave.Stats
	daysTaken    decimal.Decimal
	typeUsage    []leave.TypeUsage
	listed       []leave.RequestDetails
	lastFilter   leave.ListFilter

	created      []*leave.LeaveRequest
	increments   []decimal.Decimal
	outboxEvents []kafka.OutboxEvent

	employeeID  string
	leaveTypeID string
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	ctrl := gomock.NewController(t)
	repo := mock_leave.NewMockRepository(ctrl)
	employees := mock_employee.NewMockRepository(ctrl)
	types := mock_leavetype.NewMockRepository(ctrl)
	holidays := mock_holiday.NewMockRepository(ctrl)
	balances := mock_balance.NewMockRepository(ctrl)
	outbox := mock_kafka.NewMockOutboxRepository(ctrl)

	empID := uuid.New()
	typeID := uuid.New()

	deps := &leaveServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		requests: map[string]*leave.RequestDetails{},
		employeeRows: map[string]*employee.Employee{
			empID.String(): {
				ID:          empID,
				Name:        "Priya Sharma",
				Gender:      employee.GenderFemale,
				JoiningDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				IsActive:    true,
			},
		},
		typeRows: map[string]*leavetype.LeaveType{
			typeID.String(): {
				ID:          typeID,
				Name:        "Casual Leave",
				DefaultDays: 12,
				Category:    leavetype.CategoryStandard,
				IsActive:    true,
			},
		},
		balanceRows: map[string]*balance.LeaveBalance{
			balanceKey(empID.String(), typeID.String()): {
				EmployeeID:  empID,
				LeaveTypeID: typeID,
				Year:        2030,
				TotalDays:   decimal.NewFromInt(12),
				UsedDays:    decimal.Zero,
			},
		},
		employeeID:  empID.String(),
		leaveTypeID: typeID.String(),
	}

	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req *leave.LeaveRequest) error {
			deps.created = append(deps.created, req)
			return nil
		}).AnyTimes()
	repo.EXPECT().FindByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string) (*leave.RequestDetails, error) {
			if details, ok := deps.requests[id]; ok {
				return details, nil
			}
			return nil, gorm.ErrRecordNotFound
		}).AnyTimes()
	repo.EXPECT().HasOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
			return deps.overlapping, nil
		}).AnyTimes()
	repo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, filter leave.ListFilter) ([]leave.RequestDetails, int64, error) {
			deps.lastFilter = filter
			return deps.listed, int64(len(deps.listed)), nil
		}).AnyTimes()
	repo.EXPECT().UpdateDecision(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, id, status, approvedBy string, rejectionReason *string) error {
			details, ok := deps.requests[id]
			if !ok || details.Status != leave.StatusPending {
				return sql.ErrNoRows
			}
			details.Status = status
			details.RejectionReason = rejectionReason
			return nil
		}).AnyTimes()
	repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, id, status string) error {
			details, ok := deps.requests[id]
			if !ok || details.Status != leave.StatusPending {
				return sql.ErrNoRows
			}
			if deps.decisionDuringCancel != "" {
				details.Status = deps.decisionDuringCancel
				return sql.ErrNoRows
			}
			details.Status = status
			return nil
		}).AnyTimes()
	repo.EXPECT().CountByStatus(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, employeeID string) (leave.Stats, error) {
			return deps.stats, nil
		}).AnyTimes()
	repo.EXPECT().DaysTakenInYear(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, employeeID string, year int) (decimal.Decimal, error) {
			return deps.daysTaken, nil
		}).AnyTimes()
	repo.EXPECT().DaysByTypeInYear(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, employeeID string, year int) ([]leave.TypeUsage, error) {
			return deps.typeUsage, nil
		}).AnyTimes()

	employees.EXPECT().FindByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string) (*employee.Employee, error) {
			if e, ok := deps.employeeRows[id]; ok {
				return e, nil
			}
			return nil, gorm.ErrRecordNotFound
		}).AnyTimes()

	types.EXPECT().FindByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			if lt, ok := deps.typeRows[id]; ok {
				return lt, nil
			}
			return nil, gorm.ErrRecordNotFound
		}).AnyTimes()

	holidays.EXPECT().ActiveDatesBetween(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, start, end time.Time) ([]time.Time, error) {
			return deps.holidayDates, nil
		}).AnyTimes()
	holidays.EXPECT().IsActiveHoliday(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, date time.Time) (bool, error) {
			return deps.isHoliday, nil
		}).AnyTimes()

	balances.EXPECT().WithTx(gomock.Any()).Return(balances).AnyTimes()
	balances.EXPECT().FindByEmployeeTypeYear(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, employeeID, leaveTypeID string, year int) (*balance.LeaveBalance, error) {
			if b, ok := deps.balanceRows[balanceKey(employeeID, leaveTypeID)]; ok {
				return b, nil
			}
			return nil, gorm.ErrRecordNotFound
		}).AnyTimes()
	balances.EXPECT().IncrementUsed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
			b, ok := deps.balanceRows[balanceKey(employeeID, leaveTypeID)]
			if !ok {
				return sql.ErrNoRows
			}
			b.UsedDays = b.UsedDays.Add(days)
			deps.increments = append(deps.increments, days)
			return nil
		}).AnyTimes()

	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox).AnyTimes()
	outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, event kafka.OutboxEvent) error {
			deps.outboxEvents = append(deps.outboxEvents, event)
			return nil
		}).AnyTimes()

	deps.service = leave.NewService(db, repo, employees, types, holidays, balances, outbox)
	return deps
}

func applyRequest(deps *leaveServiceDeps, start, end string) leave.ApplyLeaveRequest {
	return leave.ApplyLeaveRequest{
		LeaveTypeID: deps.leaveTypeID,
		StartDate:   start,
		EndDate:     end,
		Reason:      "Family function out of town",
	}
}

func TestLeaveService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("success - full week counts five working days", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Apply(ctx, deps.employeeID, applyRequest(deps, "2030-06-10", "2030-06-14"))

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.True(t, resp.TotalDays.Equal(decimal.NewFromInt(5)))
		assert.Len(t, deps.created, 1)
	})

	t.Run("success - holiday inside range is excluded", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.holidayDates = []time.Time{time.Date(2030, 6, 12, 0, 0, 0, 0, time.UTC)}
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Apply(ctx, deps.employeeID, applyRequest(deps, "2030-06-10", "2030-06-14"))

		assert.NoError(t, err)
		assert.True(t, resp.TotalDays.Equal(decimal.NewFromInt(4)))
	})

	t.Run("negative - start after end", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Apply(ctx, deps.employeeID, applyRequest(deps, "2030-06-14", "2030-06-10"))

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative - past start date", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Apply(ctx, deps.employeeID, applyRequest(deps, "2020-01-06", "2020-01-07"))

		assert.ErrorIs(t, err, leaveerrors.ErrPastDate)
	})

	t.Run("negative - unknown employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Apply(ctx, uuid.NewString(), applyRequest(deps, "2030-06-10", "2030-06-14"))

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})

	t.Run("negative - before joining date", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.employeeRows[deps.employeeID].JoiningDate = time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)

		_, err := deps.service.Apply(ctx, deps.employeeID, applyRequest(deps, "2030-06-10", "2030-06-14"))

		assert.ErrorIs(t, err, leaveerrors.ErrBeforeJoiningDate)
	})

	t.Run("negative - inactive leave type", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.typeRows[deps.leaveTypeID].IsActive = false

		_, err := deps.service.Apply(ctx, deps.employeeID, applyRequest(deps, "2030-06-10", "2030-06-14"))

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})

	t.Run("negative - overlapping request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.overlapping = true

		_, err := deps.service.Apply(ctx, deps.employeeID, applyRequest(deps, "2030-06-10", "2030-06-14"))

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("negative - weekend only range has no working days", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Apply(ctx, deps.employeeID, applyRequest(deps, "2030-06-15", "2030-06-16"))

		assert.ErrorIs(t, err, leaveerrors.ErrNoWorkingDays)
	})

	t.Run("negative - insufficient balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		bal := deps.balanceRows[balanceKey(deps.employeeID, deps.leaveTypeID)]
		bal.UsedDays = decimal.NewFromInt(10)

		_, err := deps.service.Apply(ctx, deps.employeeID, applyRequest(deps, "2030-06-10", "2030-06-14"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Insufficient leave balance. You have 2 days remaining for Casual Leave")
	})

	t.Run("negative - maternity requires female employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.typeRows[deps.leaveTypeID].Category = leavetype.CategoryMaternity
		deps.employeeRows[deps.employeeID].Gender = employee.GenderMale

		_, err := deps.service.Apply(ctx, deps.employeeID, applyRequest(deps, "2030-06-10", "2030-06-14"))

		assert.ErrorIs(t, err, leaveerrors.ErrMaternityFemaleOnly)
	})

	t.Run("negative - paternity requires male employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.typeRows[deps.leaveTypeID].Category = leavetype.CategoryPaternity

		_, err := deps.service.Apply(ctx, deps.employeeID, applyRequest(deps, "2030-06-10", "2030-06-14"))

		assert.ErrorIs(t, err, leaveerrors.ErrPaternityMaleOnly)
	})

	t.Run("success - unpaid leave skips the balance check", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.typeRows[deps.leaveTypeID].Category = leavetype.CategoryUnpaid
		delete(deps.balanceRows, balanceKey(deps.employeeID, deps.leaveTypeID))
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Apply(ctx, deps.employeeID, applyRequest(deps, "2030-06-10", "2030-06-14"))

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
	})
}

func TestLeaveService_ApplyHalfDay(t *testing.T) {
	ctx := context.Background()
	session := "AM"

	t.Run("success - half day on a working day", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := applyRequest(deps, "2030-06-10", "2030-06-10")
		req.IsHalfDay = true
		req.HalfDaySession = &session

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Apply(ctx, deps.employeeID, req)

		assert.NoError(t, err)
		assert.True(t, resp.TotalDays.Equal(decimal.NewFromFloat(0.5)))
	})

	t.Run("negative - half day across multiple days", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := applyRequest(deps, "2030-06-10", "2030-06-11")
		req.IsHalfDay = true
		req.HalfDaySession = &session

		_, err := deps.service.Apply(ctx, deps.employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrHalfDayMultipleDays)
	})

	t.Run("negative - half day on a weekend", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := applyRequest(deps, "2030-06-15", "2030-06-15")
		req.IsHalfDay = true
		req.HalfDaySession = &session

		_, err := deps.service.Apply(ctx, deps.employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrHalfDayNonWorkingDay)
	})

	t.Run("negative - half day on a public holiday", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.isHoliday = true
		req := applyRequest(deps, "2030-06-10", "2030-06-10")
		req.IsHalfDay = true
		req.HalfDaySession = &session

		_, err := deps.service.Apply(ctx, deps.employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrHalfDayOnHoliday)
	})

	t.Run("negative - session missing", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := applyRequest(deps, "2030-06-10", "2030-06-10")
		req.IsHalfDay = true

		_, err := deps.service.Apply(ctx, deps.employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrHalfDaySessionRequired)
	})

	t.Run("negative - half day not allowed for maternity", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.typeRows[deps.leaveTypeID].Category = leavetype.CategoryMaternity
		req := applyRequest(deps, "2030-06-10", "2030-06-10")
		req.IsHalfDay = true
		req.HalfDaySession = &session

		_, err := deps.service.Apply(ctx, deps.employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrHalfDayNotAllowedForType)
	})
}

func pendingRequest(deps *leaveServiceDeps, days int64) *leave.RequestDetails {
	id := uuid.New()
	details := &leave.RequestDetails{
		LeaveRequest: leave.LeaveRequest{
			ID:          id,
			EmployeeID:  uuid.MustParse(deps.employeeID),
			LeaveTypeID: uuid.MustParse(deps.leaveTypeID),
			StartDate:   time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC),
			TotalDays:   decimal.NewFromInt(days),
			Status:      leave.StatusPending,
		},
		EmployeeName:  "Priya Sharma",
		LeaveTypeName: "Casual Leave",
	}
	deps.requests[id.String()] = details
	return details
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	approverID := uuid.NewString()

	t.Run("success - debits balance and queues decision event", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		details := pendingRequest(deps, 5)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Approve(ctx, details.ID.String(), approverID)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Len(t, deps.increments, 1)
		assert.True(t, deps.increments[0].Equal(decimal.NewFromInt(5)))
		assert.Len(t, deps.outboxEvents, 1)
		assert.Equal(t, "leave.approved", deps.outboxEvents[0].EventType)
	})

	t.Run("negative - already approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		details := pendingRequest(deps, 5)
		details.Status = leave.StatusApproved

		_, err := deps.service.Approve(ctx, details.ID.String(), approverID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Leave request is already approved")
	})

	t.Run("negative - balance exhausted since application", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		details := pendingRequest(deps, 5)
		bal := deps.balanceRows[balanceKey(deps.employeeID, deps.leaveTypeID)]
		bal.UsedDays = decimal.NewFromInt(11)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Approve(ctx, details.ID.String(), approverID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Insufficient leave balance")
		assert.Empty(t, deps.increments)
	})

	t.Run("negative - unknown request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Approve(ctx, uuid.NewString(), approverID)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	approverID := uuid.NewString()

	t.Run("success - records reason without touching balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		details := pendingRequest(deps, 5)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Reject(ctx, details.ID.String(), approverID, leave.RejectLeaveRequest{
			RejectionReason: "Team is at capacity that week",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.Empty(t, deps.increments)
		assert.Len(t, deps.outboxEvents, 1)
		assert.Equal(t, "leave.rejected", deps.outboxEvents[0].EventType)
	})

	t.Run("negative - reason too short", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		details := pendingRequest(deps, 5)

		_, err := deps.service.Reject(ctx, details.ID.String(), approverID, leave.RejectLeaveRequest{
			RejectionReason: "too busy",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonTooShort)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("success - owner cancels pending request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		details := pendingRequest(deps, 5)

		err := deps.service.Cancel(ctx, details.ID.String(), deps.employeeID, authz.RoleEmployee)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, details.Status)
	})

	t.Run("negative - cannot cancel someone else's request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		details := pendingRequest(deps, 5)

		err := deps.service.Cancel(ctx, details.ID.String(), uuid.NewString(), authz.RoleEmployee)

		assert.ErrorIs(t, err, leaveerrors.ErrCancelOwnRequestsOnly)
	})

	t.Run("success - hr may cancel on behalf of employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		details := pendingRequest(deps, 5)

		err := deps.service.Cancel(ctx, details.ID.String(), uuid.NewString(), authz.RoleHR)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, details.Status)
	})

	t.Run("negative - cannot cancel an approved request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		details := pendingRequest(deps, 5)
		details.Status = leave.StatusApproved

		err := deps.service.Cancel(ctx, details.ID.String(), deps.employeeID, authz.RoleEmployee)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot cancel approved leave request")
	})

	t.Run("negative - cancel racing an approval reports the decided status", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		details := pendingRequest(deps, 5)
		deps.decisionDuringCancel = leave.StatusApproved

		err := deps.service.Cancel(ctx, details.ID.String(), deps.employeeID, authz.RoleEmployee)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot cancel approved leave request")
		assert.Equal(t, leave.StatusApproved, details.Status)
	})
}

func TestLeaveService_Visibility(t *testing.T) {
	ctx := context.Background()

	t.Run("list is scoped to the caller for non-hr roles", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.GetAll(ctx, deps.employeeID, authz.RoleEmployee, leave.ListLeaveQuery{
			EmployeeID: uuid.NewString(),
		})

		assert.NoError(t, err)
		assert.Equal(t, deps.employeeID, deps.lastFilter.EmployeeID)
	})

	t.Run("hr list keeps the requested filter", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		other := uuid.NewString()
		_, _, err := deps.service.GetAll(ctx, deps.employeeID, authz.RoleHR, leave.ListLeaveQuery{
			EmployeeID: other,
		})

		assert.NoError(t, err)
		assert.Equal(t, other, deps.lastFilter.EmployeeID)
	})

	t.Run("list date filters are parsed into the repository filter", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.GetAll(ctx, deps.employeeID, authz.RoleHR, leave.ListLeaveQuery{
			From: "2030-06-01",
			To:   "2030-06-30",
		})

		assert.NoError(t, err)
		assert.Equal(t, "2030-06-01", deps.lastFilter.From.Format("2006-01-02"))
		assert.Equal(t, "2030-06-30", deps.lastFilter.To.Format("2006-01-02"))
	})

	t.Run("negative - employee cannot view another's request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		details := pendingRequest(deps, 5)

		_, err := deps.service.GetByID(ctx, details.ID.String(), uuid.NewString(), authz.RoleEmployee)

		assert.ErrorIs(t, err, leaveerrors.ErrViewOwnRequestsOnly)
	})
}

func TestLeaveService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("success - includes per-type breakdown", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.stats = leave.Stats{Total: 4, Pending: 1, Approved: 2, Rejected: 1}
		deps.daysTaken = decimal.NewFromFloat(6.5)
		deps.typeUsage = []leave.TypeUsage{
			{LeaveTypeID: deps.leaveTypeID, LeaveTypeName: "Casual Leave", Days: decimal.NewFromFloat(6.5)},
		}

		resp, err := deps.service.Stats(ctx, deps.employeeID, authz.RoleEmployee)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), resp.TotalRequests)
		assert.True(t, resp.DaysTakenThisYear.Equal(decimal.NewFromFloat(6.5)))
		assert.Len(t, resp.ByType, 1)
		assert.Equal(t, "Casual Leave", resp.ByType[0].LeaveTypeName)
	})
}

func TestLeaveService_ApproveConcurrentDecision(t *testing.T) {
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	details := pendingRequest(deps, 5)

	// The second decision sees the status that won.
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	_, err := deps.service.Approve(context.Background(), details.ID.String(), uuid.NewString())
	assert.NoError(t, err)

	_, err = deps.service.Approve(context.Background(), details.ID.String(), uuid.NewString())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already approved")
}
