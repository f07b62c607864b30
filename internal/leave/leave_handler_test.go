package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leavehub/internal/authz"
	"leavehub/internal/leave"
	leaveerrors "leavehub/internal/leave/errors"
	mock_leave "leavehub/internal/leave/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func withIdentity(employeeID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", employeeID)
		c.Set("employee_id", employeeID)
		c.Set("role", role)
		c.Next()
	}
}

func TestLeaveHandler_Apply(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		employeeID := uuid.NewString()
		svc := mock_leave.NewMockService(ctrl)
		svc.EXPECT().
			Apply(gomock.Any(), employeeID, gomock.Any()).
			DoAndReturn(func(ctx context.Context, eid string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, "2030-06-10", req.StartDate)
				return leave.LeaveResponse{
					ID:        uuid.NewString(),
					Status:    leave.StatusPending,
					TotalDays: decimal.NewFromInt(5),
				}, nil
			})

		router := gin.New()
		router.POST("/leave-requests", withIdentity(employeeID, authz.RoleEmployee), leave.NewHandler(svc).Apply)

		body := `{"leave_type_id":"` + uuid.NewString() + `","start_date":"2030-06-10","end_date":"2030-06-14","reason":"Family function out of town"}`
		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)
		assert.Contains(t, w.Body.String(), leave.StatusPending)
	})

	t.Run("negative - validation error on short reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := mock_leave.NewMockService(ctrl)

		router := gin.New()
		router.POST("/leave-requests", withIdentity(uuid.NewString(), authz.RoleEmployee), leave.NewHandler(svc).Apply)

		body := `{"leave_type_id":"` + uuid.NewString() + `","start_date":"2030-06-10","end_date":"2030-06-14","reason":"short"}`
		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":false`)
	})

	t.Run("negative - service error maps to envelope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := mock_leave.NewMockService(ctrl)
		svc.EXPECT().
			Apply(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap)

		router := gin.New()
		router.POST("/leave-requests", withIdentity(uuid.NewString(), authz.RoleEmployee), leave.NewHandler(svc).Apply)

		body := `{"leave_type_id":"` + uuid.NewString() + `","start_date":"2030-06-10","end_date":"2030-06-14","reason":"Family function out of town"}`
		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "You have overlapping leave requests for these dates")
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		requestID := uuid.NewString()
		hrID := uuid.NewString()
		svc := mock_leave.NewMockService(ctrl)
		svc.EXPECT().
			Reject(gomock.Any(), requestID, hrID, gomock.Any()).
			Return(leave.LeaveResponse{ID: requestID, Status: leave.StatusRejected}, nil)

		router := gin.New()
		router.PUT("/leave-requests/:id/reject", withIdentity(hrID, authz.RoleHR), leave.NewHandler(svc).Reject)

		body := `{"rejection_reason":"Team is at capacity that week"}`
		req := httptest.NewRequest(http.MethodPut, "/leave-requests/"+requestID+"/reject", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), leave.StatusRejected)
	})

	t.Run("negative - rejection reason below minimum length", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := mock_leave.NewMockService(ctrl)

		router := gin.New()
		router.PUT("/leave-requests/:id/reject", withIdentity(uuid.NewString(), authz.RoleHR), leave.NewHandler(svc).Reject)

		body := `{"rejection_reason":"no"}`
		req := httptest.NewRequest(http.MethodPut, "/leave-requests/"+uuid.NewString()+"/reject", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success - includes pagination meta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := mock_leave.NewMockService(ctrl)
		svc.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, requesterID, role string, q leave.ListLeaveQuery) ([]leave.LeaveResponse, int64, error) {
				assert.Equal(t, leave.StatusPending, q.Status)
				return []leave.LeaveResponse{{ID: uuid.NewString(), Status: leave.StatusPending}}, 1, nil
			})

		router := gin.New()
		router.GET("/leave-requests", withIdentity(uuid.NewString(), authz.RoleHR), leave.NewHandler(svc).GetAll)

		req := httptest.NewRequest(http.MethodGet, "/leave-requests?status=pending", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"meta"`)
		assert.Contains(t, w.Body.String(), `"total":1`)
	})

	t.Run("negative - invalid status filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := mock_leave.NewMockService(ctrl)

		router := gin.New()
		router.GET("/leave-requests", withIdentity(uuid.NewString(), authz.RoleHR), leave.NewHandler(svc).GetAll)

		req := httptest.NewRequest(http.MethodGet, "/leave-requests?status=bogus", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
