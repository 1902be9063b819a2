package cancel_order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders/models"
	"github.com/m04kA/SMC-BeautyService/pkg/logger"
)

type fakeOrderService struct {
	got *models.CancelOrderRequest
	err error
}

func (f *fakeOrderService) Cancel(_ context.Context, id int64, req *models.CancelOrderRequest) (*models.OrderResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.OrderResponse{ID: id, Status: "cancelled"}, nil
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/9/cancel", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"orderId": "9"})
	return req.WithContext(middleware.WithUserID(req.Context(), 42))
}

func TestHandle_WithReason(t *testing.T) {
	svc := &fakeOrderService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"reason":"заболела"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(42), svc.got.UserID)
	require.NotNil(t, svc.got.Reason)
	assert.Equal(t, "заболела", *svc.got.Reason)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &fakeOrderService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(""))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Nil(t, svc.got.Reason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", orders.ErrOrderNotFound, http.StatusNotFound},
		{"stranger", orders.ErrAccessDenied, http.StatusForbidden},
		{"terminal", orders.ErrCannotCancel, http.StatusConflict},
		{"internal", orders.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeOrderService{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(""))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
