package approve_order

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BeautyService/internal/service/orders"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders/models"
	"github.com/m04kA/SMC-BeautyService/pkg/logger"
)

type fakeOrderService struct {
	gotID    int64
	gotToken string
	err      error
}

func (f *fakeOrderService) Approve(_ context.Context, id int64, token string) (*models.OrderResponse, error) {
	f.gotID, f.gotToken = id, token
	if f.err != nil {
		return nil, f.err
	}
	return &models.OrderResponse{ID: id, Status: "approved"}, nil
}

func newRequest(orderID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID+"/approve"+query, nil)
	return mux.SetURLVars(req, map[string]string{"orderId": orderID})
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name    string
		orderID string
		query   string
		err     error
		status  int
	}{
		{"approved", "7", "?token=abc", nil, http.StatusOK},
		{"bad id", "x", "?token=abc", nil, http.StatusBadRequest},
		{"missing token", "7", "", nil, http.StatusUnauthorized},
		{"invalid token", "7", "?token=abc", fmt.Errorf("%w: expired", orders.ErrInvalidToken), http.StatusForbidden},
		{"not found", "7", "?token=abc", orders.ErrOrderNotFound, http.StatusNotFound},
		{"already declined", "7", "?token=abc", orders.ErrInvalidTransition, http.StatusConflict},
		{"internal", "7", "?token=abc", orders.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeOrderService{err: tt.err}
			h := NewHandler(svc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.orderID, tt.query))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_PassesToken(t *testing.T) {
	svc := &fakeOrderService{}
	h := NewHandler(svc, logger.NewNop())

	h.Handle(httptest.NewRecorder(), newRequest("7", "?token=signed.jwt.value"))

	assert.Equal(t, int64(7), svc.gotID)
	assert.Equal(t, "signed.jwt.value", svc.gotToken)
}
