package holiday

import (
	"context"
	"errors"
	"time"

	holidayerrors "leavehub/internal/holiday/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	BulkImport(ctx context.Context, req BulkImportRequest) (BulkImportResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	GetByYear(ctx context.Context, year int) ([]HolidayResponse, error)
	GetByID(ctx context.Context, id string) (HolidayResponse, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	exists, err := s.repo.ExistsOnDate(ctx, date, nil)
	if err != nil {
		s.logger.Error("create holiday date check failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	if exists {
		return HolidayResponse{}, holidayerrors.ErrDuplicateDate
	}

	h := &PublicHoliday{
		ID:          uuid.New(),
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	s.logger.Info("create holiday success",
		zap.String("holiday_id", h.ID.String()),
		zap.String("date", req.Date),
	)

	return mapToResponse(*h), nil
}

// BulkImport creates each row independently. A row that fails validation
// or collides with an existing date lands in Errors while the rest of the
// batch proceeds.
func (s *service) BulkImport(ctx context.Context, req BulkImportRequest) (BulkImportResponse, error) {
	resp := BulkImportResponse{
		Created: make([]HolidayResponse, 0, len(req.Holidays)),
		Errors:  make([]BulkImportError, 0),
	}

	for _, item := range req.Holidays {
		if item.Name == "" || item.Date == "" {
			resp.Errors = append(resp.Errors, BulkImportError{Holiday: item, Error: "Name and date are required"})
			continue
		}

		date, err := parseDate(item.Date)
		if err != nil {
			resp.Errors = append(resp.Errors, BulkImportError{Holiday: item, Error: "Invalid date format"})
			continue
		}

		exists, err := s.repo.ExistsOnDate(ctx, date, nil)
		if err != nil {
			s.logger.Error("bulk import date check failed", zap.Error(err))
			return BulkImportResponse{}, err
		}
		if exists {
			resp.Errors = append(resp.Errors, BulkImportError{Holiday: item, Error: "Holiday already exists on this date"})
			continue
		}

		h := &PublicHoliday{
			ID:          uuid.New(),
			Name:        item.Name,
			Date:        date,
			Description: item.Description,
			IsActive:    true,
		}
		if err := s.repo.Create(ctx, h); err != nil {
			s.logger.Error("bulk import persist failed",
				zap.String("date", item.Date),
				zap.Error(err),
			)
			resp.Errors = append(resp.Errors, BulkImportError{Holiday: item, Error: "Failed to create holiday"})
			continue
		}
		resp.Created = append(resp.Created, mapToResponse(*h))
	}

	s.logger.Info("bulk import holidays finished",
		zap.Int("created", len(resp.Created)),
		zap.Int("failed", len(resp.Errors)),
	)
	return resp, nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(holidays), nil
}

func (s *service) GetByYear(ctx context.Context, year int) ([]HolidayResponse, error) {
	if year <= 0 {
		return nil, holidayerrors.ErrInvalidYear
	}
	holidays, err := s.repo.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(holidays), nil
}

func (s *service) GetByID(ctx context.Context, id string) (HolidayResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}
	return mapToResponse(*h), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}

	if req.Name != "" {
		h.Name = req.Name
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return HolidayResponse{}, err
		}
		exists, err := s.repo.ExistsOnDate(ctx, date, &id)
		if err != nil {
			return HolidayResponse{}, err
		}
		if exists {
			return HolidayResponse{}, holidayerrors.ErrDuplicateDate
		}
		h.Date = date
	}
	if req.Description != nil {
		h.Description = *req.Description
	}
	if req.IsActive != nil {
		h.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, h); err != nil {
		s.logger.Error("update holiday persist failed",
			zap.String("holiday_id", id),
			zap.Error(err),
		)
		return HolidayResponse{}, err
	}
	return mapToResponse(*h), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}

	h.IsActive = false
	if err := s.repo.Update(ctx, h); err != nil {
		s.logger.Error("deactivate holiday persist failed",
			zap.String("holiday_id", id),
			zap.Error(err),
		)
		return err
	}
	s.logger.Info("deactivate holiday success", zap.String("holiday_id", id))
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, holidayerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(h PublicHoliday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        h.Date.Format("2006-01-02"),
		Description: h.Description,
		IsActive:    h.IsActive,
	}
}

func mapToListResponse(holidays []PublicHoliday) []HolidayResponse {
	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp
}
