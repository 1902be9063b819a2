package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	getAvailability "github.com/m04kA/SMC-BeautyService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-BeautyService/pkg/logger"
)

type fakeUseCase struct {
	got *getAvailability.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailability.Response{
		Date:            req.Date,
		SpecialistID:    req.SpecialistID,
		WorkingInterval: domain.Interval{Start: "09:00", End: "18:00"},
		FreeIntervals: []domain.Interval{
			{Start: "09:00", End: "10:00"},
			{Start: "11:30", End: "18:00"},
		},
	}, nil
}

func newRequest(specialistID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/specialists/"+specialistID+"/availability"+query, nil)
	return mux.SetURLVars(req, map[string]string{"specialistId": specialistID})
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("3", "?date=2026-05-04&serviceId=5"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got.ServiceID)
	assert.Equal(t, int64(5), *uc.got.ServiceID)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-05-04", resp.Date)
	assert.Equal(t, IntervalDTO{Start: "09:00", End: "18:00", DurationMinutes: 540}, resp.WorkingInterval)
	require.Len(t, resp.FreeIntervals, 2)
	assert.Equal(t, IntervalDTO{Start: "11:30", End: "18:00", DurationMinutes: 390}, resp.FreeIntervals[1])
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		query  string
		err    error
		status int
	}{
		{"bad specialist id", "abc", "?date=2026-05-04", nil, http.StatusBadRequest},
		{"missing date", "3", "", nil, http.StatusBadRequest},
		{"bad date", "3", "?date=2026/05/04", nil, http.StatusBadRequest},
		{"bad service id", "3", "?date=2026-05-04&serviceId=x", nil, http.StatusBadRequest},
		{"not found", "3", "?date=2026-05-04", getAvailability.ErrSpecialistNotFound, http.StatusNotFound},
		{"past date", "3", "?date=2026-05-04", getAvailability.ErrInvalidDate, http.StatusBadRequest},
		{"closed", "3", "?date=2026-05-04", getAvailability.ErrBusinessClosed, http.StatusBadRequest},
		{"internal", "3", "?date=2026-05-04", getAvailability.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.id, tt.query))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
