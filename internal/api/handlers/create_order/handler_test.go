package create_order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	createOrder "github.com/m04kA/SMC-BeautyService/internal/usecase/create_order"
	"github.com/m04kA/SMC-BeautyService/pkg/logger"
)

type fakeUseCase struct {
	got  *createOrder.Request
	resp *createOrder.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createOrder.Request) (*createOrder.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{"specialistId":3,"serviceId":5,"date":"2026-05-04","startTime":"10:00",` +
	`"customerName":"Анна","customerEmail":"anna@example.com"}`

func newRequest(body string, userID int64) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

func TestHandle_Created(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createOrder.Response{
		ID:              11,
		BusinessID:      1,
		SpecialistID:    3,
		ServiceID:       5,
		CustomerID:      42,
		OrderDate:       time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          "active",
		ServiceName:     "Стрижка",
		Price:           decimal.RequireFromString("1500.00"),
		CreatedAt:       now,
		UpdatedAt:       now,
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(validBody, 42))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.CustomerID)
	assert.Equal(t, "10:00", uc.got.StartTime.String())
	assert.Equal(t, "2026-05-04", uc.got.Date.Format("2006-01-02"))

	var resp OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "2026-05-04", resp.OrderDate)
	assert.Equal(t, "active", resp.Status)
	assert.True(t, resp.Price.Equal(decimal.RequireFromString("1500")))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		userID int64
		ucErr  error
		status int
		msg    string
	}{
		{"missing user", validBody, 0, nil, http.StatusUnauthorized, msgMissingUserID},
		{"malformed json", `{"specialistId":`, 42, nil, http.StatusBadRequest, msgInvalidRequestBody},
		{"unknown field", `{"carId":1}`, 42, nil, http.StatusBadRequest, msgInvalidRequestBody},
		{"bad date", strings.Replace(validBody, "2026-05-04", "04.05.2026", 1), 42, nil, http.StatusBadRequest, msgInvalidDate},
		{"bad time", strings.Replace(validBody, "10:00", "25:99", 1), 42, nil, http.StatusBadRequest, msgInvalidTime},
		{"slot taken", validBody, 42, fmt.Errorf("%w: overlap", createOrder.ErrSlotNotAvailable), http.StatusConflict, msgSlotNotAvailable},
		{"specialist missing", validBody, 42, createOrder.ErrSpecialistNotFound, http.StatusNotFound, msgSpecialistNotFound},
		{"closed", validBody, 42, createOrder.ErrBusinessClosed, http.StatusBadRequest, msgBusinessClosed},
		{"too late", validBody, 42, createOrder.ErrTooLateToBook, http.StatusBadRequest, msgTooLateToBook},
		{"internal", validBody, 42, createOrder.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.body, tt.userID))

			assert.Equal(t, tt.status, rec.Code)
			if tt.msg != "" {
				var resp handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.msg, resp.Message)
			}
		})
	}
}
