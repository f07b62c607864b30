package leavetype

import (
	"context"
	"errors"

	leavetypeerrors "leavehub/internal/leavetype/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultColor = "#3B82F6"

type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	exists, err := s.repo.NameExists(ctx, req.Name, nil)
	if err != nil {
		s.logger.Error("create leave type name check failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	if exists {
		return LeaveTypeResponse{}, leavetypeerrors.ErrDuplicateName
	}

	category := req.Category
	if category == "" {
		category = DeriveCategory(req.Name)
	}
	color := req.Color
	if color == "" {
		color = defaultColor
	}

	lt := &LeaveType{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		DefaultDays: req.DefaultDays,
		Color:       color,
		Category:    category,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	s.logger.Info("create leave type success",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("name", lt.Name),
		zap.String("category", lt.Category),
	)

	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(types), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	if req.Name != "" && req.Name != lt.Name {
		exists, err := s.repo.NameExists(ctx, req.Name, &id)
		if err != nil {
			return LeaveTypeResponse{}, err
		}
		if exists {
			return LeaveTypeResponse{}, leavetypeerrors.ErrDuplicateName
		}
		lt.Name = req.Name
	}
	if req.Description != nil {
		lt.Description = *req.Description
	}
	if req.DefaultDays != nil {
		lt.DefaultDays = *req.DefaultDays
	}
	if req.Color != nil {
		lt.Color = *req.Color
	}
	if req.Category != "" {
		lt.Category = req.Category
	}

	if err := s.repo.Update(ctx, lt); err != nil {
		s.logger.Error("update leave type persist failed",
			zap.String("leave_type_id", id),
			zap.Error(err),
		)
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavetypeerrors.ErrLeaveTypeNotFound
		}
		return err
	}

	referenced, err := s.repo.IsReferenced(ctx, id)
	if err != nil {
		s.logger.Error("deactivate leave type reference check failed", zap.Error(err))
		return err
	}
	if referenced {
		return leavetypeerrors.ErrLeaveTypeInUse
	}

	lt.IsActive = false
	if err := s.repo.Update(ctx, lt); err != nil {
		s.logger.Error("deactivate leave type persist failed",
			zap.String("leave_type_id", id),
			zap.Error(err),
		)
		return err
	}
	s.logger.Info("deactivate leave type success", zap.String("leave_type_id", id))
	return nil
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:          lt.ID.String(),
		Name:        lt.Name,
		Description: lt.Description,
		DefaultDays: lt.DefaultDays,
		Color:       lt.Color,
		Category:    lt.Category,
		IsActive:    lt.IsActive,
	}
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp
}
