package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"leavehub/internal/employee"
	"leavehub/internal/holiday"
	"leavehub/internal/leave"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	overviewCacheKey = "dashboard:overview"
	overviewCacheTTL = 30 * time.Second
)

type UpcomingHoliday struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

type OverviewResponse struct {
	ActiveEmployees   int64             `json:"active_employees"`
	TotalRequests     int64             `json:"total_requests"`
	PendingRequests   int64             `json:"pending_requests"`
	ApprovedRequests  int64             `json:"approved_requests"`
	RejectedRequests  int64             `json:"rejected_requests"`
	DaysTakenThisYear decimal.Decimal   `json:"days_taken_this_year"`
	UpcomingHolidays  []UpcomingHoliday `json:"upcoming_holidays"`
}

type Service interface {
	Overview(ctx context.Context) (OverviewResponse, error)
}

type service struct {
	employees employee.Repository
	leaves    leave.Repository
	holidays  holiday.Repository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	employees employee.Repository,
	leaves leave.Repository,
	holidays holiday.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		employees: employees,
		leaves:    leaves,
		holidays:  holidays,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
		now:       time.Now,
	}
}

// Overview aggregates several counts, so results are cached briefly and
// concurrent cache misses collapse into a single database pass.
func (s *service) Overview(ctx context.Context) (OverviewResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, overviewCacheKey).Result(); err == nil {
			var resp OverviewResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(overviewCacheKey, func() (interface{}, error) {
		resp, err := s.buildOverview(ctx)
		if err != nil {
			return OverviewResponse{}, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, overviewCacheKey, jsonData, overviewCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return OverviewResponse{}, err
	}
	return v.(OverviewResponse), nil
}

func (s *service) buildOverview(ctx context.Context) (OverviewResponse, error) {
	activeEmployees, err := s.employees.CountActive(ctx)
	if err != nil {
		s.logger.Error("overview employee count failed", zap.Error(err))
		return OverviewResponse{}, err
	}

	stats, err := s.leaves.CountByStatus(ctx, "")
	if err != nil {
		s.logger.Error("overview leave counts failed", zap.Error(err))
		return OverviewResponse{}, err
	}

	now := s.now().UTC()
	taken, err := s.leaves.DaysTakenInYear(ctx, "", now.Year())
	if err != nil {
		s.logger.Error("overview days taken failed", zap.Error(err))
		return OverviewResponse{}, err
	}

	yearEnd := time.Date(now.Year(), 12, 31, 0, 0, 0, 0, time.UTC)
	dates, err := s.holidays.ActiveDatesBetween(ctx, now, yearEnd)
	if err != nil {
		s.logger.Error("overview holiday lookup failed", zap.Error(err))
		return OverviewResponse{}, err
	}

	upcoming := make([]UpcomingHoliday, 0, 5)
	if len(dates) > 0 {
		holidays, err := s.holidays.FindByYear(ctx, now.Year())
		if err != nil {
			s.logger.Error("overview holiday detail lookup failed", zap.Error(err))
			return OverviewResponse{}, err
		}
		for _, h := range holidays {
			if h.Date.Before(now) || !h.IsActive {
				continue
			}
			upcoming = append(upcoming, UpcomingHoliday{
				Name: h.Name,
				Date: h.Date.Format("2006-01-02"),
			})
			if len(upcoming) == 5 {
				break
			}
		}
	}

	return OverviewResponse{
		ActiveEmployees:   activeEmployees,
		TotalRequests:     stats.Total,
		PendingRequests:   stats.Pending,
		ApprovedRequests:  stats.Approved,
		RejectedRequests:  stats.Rejected,
		DaysTakenThisYear: taken,
		UpcomingHolidays:  upcoming,
	}, nil
}
