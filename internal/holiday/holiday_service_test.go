package holiday_test

import (
	"context"
	"testing"
	"time"

	"leavehub/internal/holiday"
	holidayerrors "leavehub/internal/holiday/errors"
	mock_holiday "leavehub/internal/holiday/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// holidayDeps backs the mock repository with in-memory rows keyed by id
// and by date, mirroring the unique date constraint.
type holidayDeps struct {
	repo    *mock_holiday.MockRepository
	service holiday.Service

	holidays map[string]*holiday.PublicHoliday
	onDate   map[string]string
	created  []*holiday.PublicHoliday
	updated  []*holiday.PublicHoliday
}

func setupHolidayTest(t *testing.T) *holidayDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	deps := &holidayDeps{
		repo:     mock_holiday.NewMockRepository(ctrl),
		holidays: map[string]*holiday.PublicHoliday{},
		onDate:   map[string]string{},
	}

	deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, h *holiday.PublicHoliday) error {
			deps.created = append(deps.created, h)
			deps.holidays[h.ID.String()] = h
			deps.onDate[h.Date.Format("2006-01-02")] = h.ID.String()
			return nil
		}).AnyTimes()
	deps.repo.EXPECT().FindAllActive(gomock.Any()).DoAndReturn(
		func(ctx context.Context) ([]holiday.PublicHoliday, error) {
			var out []holiday.PublicHoliday
			for _, h := range deps.holidays {
				if h.IsActive {
					out = append(out, *h)
				}
			}
			return out, nil
		}).AnyTimes()
	deps.repo.EXPECT().FindByYear(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, year int) ([]holiday.PublicHoliday, error) {
			var out []holiday.PublicHoliday
			for _, h := range deps.holidays {
				if h.Date.Year() == year {
					out = append(out, *h)
				}
			}
			return out, nil
		}).AnyTimes()
	deps.repo.EXPECT().FindByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string) (*holiday.PublicHoliday, error) {
			if h, ok := deps.holidays[id]; ok {
				return h, nil
			}
			return nil, gorm.ErrRecordNotFound
		}).AnyTimes()
	deps.repo.EXPECT().ExistsOnDate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, date time.Time, excludeID *string) (bool, error) {
			id, ok := deps.onDate[date.Format("2006-01-02")]
			if !ok {
				return false, nil
			}
			if excludeID != nil && id == *excludeID {
				return false, nil
			}
			return true, nil
		}).AnyTimes()
	deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, h *holiday.PublicHoliday) error {
			deps.updated = append(deps.updated, h)
			deps.holidays[h.ID.String()] = h
			return nil
		}).AnyTimes()
	deps.repo.EXPECT().ActiveDatesBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	deps.repo.EXPECT().IsActiveHoliday(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()

	deps.service = holiday.NewService(deps.repo)
	return deps
}

func seedHoliday(deps *holidayDeps, name, date string, active bool) *holiday.PublicHoliday {
	d, _ := time.Parse("2006-01-02", date)
	h := &holiday.PublicHoliday{ID: uuid.New(), Name: name, Date: d, IsActive: active}
	deps.holidays[h.ID.String()] = h
	deps.onDate[date] = h.ID.String()
	return h
}

func TestHolidayService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupHolidayTest(t)

		resp, err := deps.service.Create(ctx, holiday.CreateHolidayRequest{
			Name:        "Republic Day",
			Date:        "2030-01-26",
			Description: "National holiday",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Republic Day", resp.Name)
		assert.Equal(t, "2030-01-26", resp.Date)
		assert.True(t, resp.IsActive)
		assert.Len(t, deps.created, 1)
	})

	t.Run("negative - malformed date", func(t *testing.T) {
		deps := setupHolidayTest(t)

		_, err := deps.service.Create(ctx, holiday.CreateHolidayRequest{Name: "Bad", Date: "26-01-2030"})

		assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateFormat)
	})

	t.Run("negative - duplicate date", func(t *testing.T) {
		deps := setupHolidayTest(t)
		seedHoliday(deps, "Republic Day", "2030-01-26", true)

		_, err := deps.service.Create(ctx, holiday.CreateHolidayRequest{Name: "Clone", Date: "2030-01-26"})

		assert.ErrorIs(t, err, holidayerrors.ErrDuplicateDate)
	})
}

func TestHolidayService_BulkImport(t *testing.T) {
	ctx := context.Background()

	t.Run("success - mixed batch reports per-row errors", func(t *testing.T) {
		deps := setupHolidayTest(t)
		seedHoliday(deps, "Republic Day", "2030-01-26", true)

		resp, err := deps.service.BulkImport(ctx, holiday.BulkImportRequest{
			Holidays: []holiday.BulkImportItem{
				{Name: "Independence Day", Date: "2030-08-15"},
				{Name: "", Date: "2030-10-02"},
				{Name: "Bad Date", Date: "15/08/2030"},
				{Name: "Clone", Date: "2030-01-26"},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, resp.Created, 1)
		assert.Equal(t, "Independence Day", resp.Created[0].Name)
		assert.Len(t, resp.Errors, 3)
		assert.Equal(t, "Name and date are required", resp.Errors[0].Error)
		assert.Equal(t, "Invalid date format", resp.Errors[1].Error)
		assert.Equal(t, "Holiday already exists on this date", resp.Errors[2].Error)
		assert.Len(t, deps.created, 1)
	})

	t.Run("success - all rows imported", func(t *testing.T) {
		deps := setupHolidayTest(t)

		resp, err := deps.service.BulkImport(ctx, holiday.BulkImportRequest{
			Holidays: []holiday.BulkImportItem{
				{Name: "Republic Day", Date: "2030-01-26"},
				{Name: "Independence Day", Date: "2030-08-15", Description: "National holiday"},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, resp.Created, 2)
		assert.Empty(t, resp.Errors)
	})

	t.Run("negative - duplicate within the batch", func(t *testing.T) {
		deps := setupHolidayTest(t)

		resp, err := deps.service.BulkImport(ctx, holiday.BulkImportRequest{
			Holidays: []holiday.BulkImportItem{
				{Name: "Republic Day", Date: "2030-01-26"},
				{Name: "Republic Day Again", Date: "2030-01-26"},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, resp.Created, 1)
		assert.Len(t, resp.Errors, 1)
		assert.Equal(t, "Holiday already exists on this date", resp.Errors[0].Error)
	})
}

func TestHolidayService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success - partial update keeps untouched fields", func(t *testing.T) {
		deps := setupHolidayTest(t)
		h := seedHoliday(deps, "Diwali", "2030-10-28", true)

		resp, err := deps.service.Update(ctx, h.ID.String(), holiday.UpdateHolidayRequest{Name: "Deepavali"})

		assert.NoError(t, err)
		assert.Equal(t, "Deepavali", resp.Name)
		assert.Equal(t, "2030-10-28", resp.Date)
		assert.True(t, resp.IsActive)
	})

	t.Run("success - moving to own date is not a conflict", func(t *testing.T) {
		deps := setupHolidayTest(t)
		h := seedHoliday(deps, "Diwali", "2030-10-28", true)

		_, err := deps.service.Update(ctx, h.ID.String(), holiday.UpdateHolidayRequest{Date: "2030-10-28"})

		assert.NoError(t, err)
	})

	t.Run("negative - moving onto another holiday", func(t *testing.T) {
		deps := setupHolidayTest(t)
		seedHoliday(deps, "Republic Day", "2030-01-26", true)
		h := seedHoliday(deps, "Diwali", "2030-10-28", true)

		_, err := deps.service.Update(ctx, h.ID.String(), holiday.UpdateHolidayRequest{Date: "2030-01-26"})

		assert.ErrorIs(t, err, holidayerrors.ErrDuplicateDate)
	})

	t.Run("negative - not found", func(t *testing.T) {
		deps := setupHolidayTest(t)

		_, err := deps.service.Update(ctx, uuid.NewString(), holiday.UpdateHolidayRequest{Name: "Ghost"})

		assert.ErrorIs(t, err, holidayerrors.ErrHolidayNotFound)
	})
}

func TestHolidayService_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("success - deactivated holiday leaves active listing", func(t *testing.T) {
		deps := setupHolidayTest(t)
		h := seedHoliday(deps, "Diwali", "2030-10-28", true)

		err := deps.service.Deactivate(ctx, h.ID.String())
		assert.NoError(t, err)

		listed, err := deps.service.GetAll(ctx)
		assert.NoError(t, err)
		assert.Empty(t, listed)
	})

	t.Run("negative - not found", func(t *testing.T) {
		deps := setupHolidayTest(t)

		err := deps.service.Deactivate(ctx, uuid.NewString())

		assert.ErrorIs(t, err, holidayerrors.ErrHolidayNotFound)
	})
}

func TestHolidayService_GetByYear(t *testing.T) {
	ctx := context.Background()

	t.Run("success - filters by year", func(t *testing.T) {
		deps := setupHolidayTest(t)
		seedHoliday(deps, "Republic Day", "2030-01-26", true)
		seedHoliday(deps, "Old Holiday", "2029-01-26", true)

		resp, err := deps.service.GetByYear(ctx, 2030)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Republic Day", resp[0].Name)
	})

	t.Run("negative - invalid year", func(t *testing.T) {
		deps := setupHolidayTest(t)

		_, err := deps.service.GetByYear(ctx, 0)

		assert.ErrorIs(t, err, holidayerrors.ErrInvalidYear)
	})
}
