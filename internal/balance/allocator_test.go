package balance_test

import (
	"context"
	"testing"
	"time"

	"leavehub/internal/balance"
	mock_balance "leavehub/internal/balance/mock"
	"leavehub/internal/leavetype"
	mock_leavetype "leavehub/internal/leavetype/mock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestProRate(t *testing.T) {
	currentYear := 2024

	t.Run("january first join gets the full allotment", func(t *testing.T) {
		joining := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		got := balance.ProRate(24, joining, currentYear)
		assert.True(t, got.Equal(decimal.NewFromInt(24)), "got %s", got)
	})

	t.Run("mid year join is pro-rated", func(t *testing.T) {
		joining := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		got := balance.ProRate(24, joining, currentYear)
		assert.True(t, got.Equal(decimal.NewFromInt(12)), "got %s", got)
	})

	t.Run("prior year join gets the full allotment", func(t *testing.T) {
		joining := time.Date(2021, 9, 15, 0, 0, 0, 0, time.UTC)
		got := balance.ProRate(18, joining, currentYear)
		assert.True(t, got.Equal(decimal.NewFromInt(18)), "got %s", got)
	})

	t.Run("december join rounds down to near zero", func(t *testing.T) {
		joining := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)
		got := balance.ProRate(12, joining, currentYear)
		assert.True(t, got.LessThanOrEqual(decimal.NewFromInt(1)), "got %s", got)
	})
}

func TestAllocator_AllocateForEmployee(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("one row per active leave type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		annual := leavetype.LeaveType{ID: uuid.New(), Name: "Annual Leave", DefaultDays: 24}
		sick := leavetype.LeaveType{ID: uuid.New(), Name: "Sick Leave", DefaultDays: 10}

		var created []*balance.LeaveBalance
		balances := mock_balance.NewMockRepository(ctrl)
		balances.EXPECT().WithTx(gomock.Any()).Return(balances).AnyTimes()
		balances.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, b *balance.LeaveBalance) error {
				created = append(created, b)
				return nil
			}).Times(2)

		types := mock_leavetype.NewMockRepository(ctrl)
		types.EXPECT().FindAllActive(gomock.Any()).Return([]leavetype.LeaveType{annual, sick}, nil)

		alloc := balance.NewAllocator(balances, types)

		joining := time.Date(time.Now().UTC().Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		err := alloc.AllocateForEmployee(ctx, nil, employeeID, joining)

		assert.NoError(t, err)
		assert.Len(t, created, 2)
		for _, b := range created {
			assert.Equal(t, employeeID, b.EmployeeID)
			assert.True(t, b.UsedDays.IsZero())
			assert.Equal(t, time.Now().UTC().Year(), b.Year)
		}
		assert.True(t, created[0].TotalDays.Equal(decimal.NewFromInt(24)))
		assert.True(t, created[1].TotalDays.Equal(decimal.NewFromInt(10)))
	})
}
