package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"leavehub/internal/authz"
	"leavehub/internal/balance"
	employeeerrors "leavehub/internal/employee/errors"
	"leavehub/internal/events"
	"leavehub/internal/messaging/kafka"
	"leavehub/internal/shared/contextutil"
	"leavehub/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	dateLayout         = "2006-01-02"
	OptionsCacheKey    = "employees:options"
	optionsCacheTTL    = time.Hour
	employeeNumberType = "employee_number"
)

type BalanceResponse struct {
	LeaveTypeID   string          `json:"leave_type_id"`
	LeaveTypeName string          `json:"leave_type_name"`
	Color         string          `json:"color"`
	Category      string          `json:"category"`
	Year          int             `json:"year"`
	TotalDays     decimal.Decimal `json:"total_days"`
	UsedDays      decimal.Decimal `json:"used_days"`
	RemainingDays decimal.Decimal `json:"remaining_days"`
}

type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, q ListEmployeeQuery) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context) ([]Option, error)
	GetByID(ctx context.Context, id, requesterID, role string) (EmployeeResponse, error)
	GetLeaveBalances(ctx context.Context, id, requesterID, role string, year int) ([]BalanceResponse, error)
	Update(ctx context.Context, id, requesterID, role string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	counter     counter.Repository
	allocator   balance.Allocator
	balanceRepo balance.Repository
	outbox      kafka.OutboxRepository
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	allocator balance.Allocator,
	balanceRepo balance.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		counter:     counterRepo,
		allocator:   allocator,
		balanceRepo: balanceRepo,
		outbox:      outboxRepo,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
		now:         time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department", req.Department),
	)

	joining, err := time.ParseInLocation(dateLayout, req.JoiningDate, time.UTC)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoiningDate
	}
	if joining.After(s.now().UTC()) {
		return EmployeeResponse{}, employeeerrors.ErrJoiningDateInFuture
	}

	exists, err := s.repo.EmailExists(ctx, req.Email, nil)
	if err != nil {
		s.logger.Error("create employee email check failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if exists {
		return EmployeeResponse{}, employeeerrors.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create employee hash password failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	nextVal, err := s.counter.GetNextValue(ctx, employeeNumberType)
	if err != nil {
		s.logger.Error("create employee generate number failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = authz.RoleEmployee
	}

	empl := &Employee{
		ID:             uuid.New(),
		EmployeeNumber: fmt.Sprintf("EMP%03d", nextVal),
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:   string(hash),
		Gender:         req.Gender,
		Department:     req.Department,
		Role:           role,
		JoiningDate:    joining,
		IsActive:       true,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.allocator.AllocateForEmployee(ctx, tx, empl.ID, joining); err != nil {
		s.logger.Error("create employee allocate balances failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:      "employee_created",
			EmployeeID:     empl.ID.String(),
			EmployeeNumber: empl.EmployeeNumber,
			OccurredAt:     s.now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, q ListEmployeeQuery) ([]EmployeeResponse, int64, error) {
	employees, total, err := s.repo.List(ctx, ListFilter{
		Search:     q.Search,
		Department: q.Department,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(employees), total, nil
}

func (s *service) GetOptions(ctx context.Context) ([]Option, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var opts []Option
			if json.Unmarshal([]byte(cached), &opts) == nil {
				return opts, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		employees, _, err := s.repo.List(ctx, ListFilter{Limit: 1000})
		if err != nil {
			return nil, err
		}

		opts := make([]Option, 0, len(employees))
		for _, e := range employees {
			opts = append(opts, Option{ID: e.ID.String(), Name: e.Name})
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(opts); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, jsonData, optionsCacheTTL)
			}
		}
		return opts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Option), nil
}

func (s *service) GetByID(ctx context.Context, id, requesterID, role string) (EmployeeResponse, error) {
	if role != authz.RoleHR && id != requesterID {
		return EmployeeResponse{}, employeeerrors.ErrViewOwnProfileOnly
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	return mapToResponse(*empl), nil
}

func (s *service) GetLeaveBalances(ctx context.Context, id, requesterID, role string, year int) ([]BalanceResponse, error) {
	if role != authz.RoleHR && id != requesterID {
		return nil, employeeerrors.ErrViewOwnProfileOnly
	}
	if year <= 0 {
		year = s.now().UTC().Year()
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("get balances employee lookup failed", zap.Error(err))
		return nil, err
	}

	rows, err := s.balanceRepo.ListByEmployeeYear(ctx, id, year)
	if err != nil {
		s.logger.Error("get balances list failed", zap.Error(err))
		return nil, err
	}

	responses := make([]BalanceResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, BalanceResponse{
			LeaveTypeID:   row.LeaveTypeID.String(),
			LeaveTypeName: row.LeaveTypeName,
			Color:         row.LeaveTypeColor,
			Category:      row.LeaveTypeCategory,
			Year:          row.Year,
			TotalDays:     row.TotalDays,
			UsedDays:      row.UsedDays,
			RemainingDays: row.Remaining(),
		})
	}
	return responses, nil
}

func (s *service) Update(ctx context.Context, id, requesterID, role string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if role != authz.RoleHR && id != requesterID {
		return EmployeeResponse{}, employeeerrors.ErrUpdateOwnProfileOnly
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("update employee fetch failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if role != authz.RoleHR && req.Role != "" && req.Role != empl.Role {
		return EmployeeResponse{}, employeeerrors.ErrRoleChangeForbidden
	}

	exists, err := s.repo.EmailExists(ctx, req.Email, &id)
	if err != nil {
		s.logger.Error("update employee email check failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if exists {
		return EmployeeResponse{}, employeeerrors.ErrDuplicateEmail
	}

	empl.Name = strings.TrimSpace(req.Name)
	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.Gender = req.Gender
	empl.Department = req.Department
	if req.Role != "" {
		empl.Role = req.Role
	}

	if err := s.repo.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("deactivate employee fetch failed", zap.Error(err))
		return err
	}
	if !empl.IsActive {
		return employeeerrors.ErrAlreadyInactive
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		s.logger.Error("deactivate employee persist failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("deactivate employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("invalidate employee options cache failed",
			zap.Error(err),
			zap.String("key", OptionsCacheKey),
		)
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID.String(),
		EmployeeNumber: e.EmployeeNumber,
		Name:           e.Name,
		Email:          e.Email,
		Gender:         e.Gender,
		Department:     e.Department,
		Role:           e.Role,
		JoiningDate:    e.JoiningDate.Format(dateLayout),
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, mapToResponse(e))
	}
	return responses
}
