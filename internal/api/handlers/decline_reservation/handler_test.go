package decline_reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations/models"
)

type fakeService struct {
	declineErr error
	gotID      int64
	gotReq     *models.DeclineReservationRequest
}

func (f *fakeService) Decline(_ context.Context, id int64, req *models.DeclineReservationRequest) error {
	f.gotID = id
	f.gotReq = req
	return f.declineErr
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func performDecline(t *testing.T, service *fakeService, reservationID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+reservationID+"/decline", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	router := mux.NewRouter()
	handler := NewHandler(service, noopLogger{})
	router.HandleFunc("/api/v1/reservations/{reservationId}/decline", handler.Handle).Methods(http.MethodPatch)
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Handle(t *testing.T) {
	t.Run("declines reservation", func(t *testing.T) {
		service := &fakeService{}
		rec := performDecline(t, service, "10", DeclineReservationRequest{OwnerID: 100, Reason: "квартира на ремонте"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(10), service.gotID)
		require.NotNil(t, service.gotReq)
		assert.Equal(t, int64(100), service.gotReq.OwnerID)
		assert.Equal(t, "квартира на ремонте", service.gotReq.Reason)
	})

	t.Run("invalid reservation id", func(t *testing.T) {
		rec := performDecline(t, &fakeService{}, "abc", DeclineReservationRequest{OwnerID: 100, Reason: "нет"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing reason maps to 400", func(t *testing.T) {
		service := &fakeService{declineErr: reservations.ErrEmptyReason}
		rec := performDecline(t, service, "10", DeclineReservationRequest{OwnerID: 100})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		service := &fakeService{declineErr: reservations.ErrReservationNotFound}
		rec := performDecline(t, service, "10", DeclineReservationRequest{OwnerID: 100, Reason: "нет"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("access denied maps to 403", func(t *testing.T) {
		service := &fakeService{declineErr: reservations.ErrAccessDenied}
		rec := performDecline(t, service, "10", DeclineReservationRequest{OwnerID: 1, Reason: "нет"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("already processed maps to 409", func(t *testing.T) {
		service := &fakeService{declineErr: reservations.ErrNotPending}
		rec := performDecline(t, service, "10", DeclineReservationRequest{OwnerID: 100, Reason: "нет"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
