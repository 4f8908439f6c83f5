package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	customer = &domain.User{ID: "u1", Email: "asha@example.com", Role: domain.RoleCustomer}
	admin    = &domain.User{ID: "admin", Role: domain.RoleAdmin}
)

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(userKey, customer)

	body, _ := json.Marshal(createBookingRequest{ProviderID: "prov1", Slot: "2025-11-12T09:00", Notes: "leaking tap"})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	input := booking.CreateBookingInput{UserID: "u1", ProviderID: "prov1", Slot: "2025-11-12T09:00", Notes: "leaking tap"}
	created := &domain.Booking{
		ID:         "b1",
		UserID:     "u1",
		ProviderID: "prov1",
		Slot:       "2025-11-12T09:00",
		Amount:     500,
		Status:     domain.BookingStatusPending,
	}

	mockService.On("CreateBooking", c.Request.Context(), input).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response domain.Booking
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "b1", response.ID)
	assert.Equal(t, domain.BookingStatusPending, response.Status)
	assert.Equal(t, int64(500), response.Amount)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"slot taken", booking.ErrSlotTaken, http.StatusConflict},
		{"unknown provider", booking.ErrProviderNotFound, http.StatusNotFound},
		{"unknown slot", booking.ErrUnknownSlot, http.StatusBadRequest},
		{"stale user", booking.ErrNotAuthenticated, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set(userKey, customer)
			c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader([]byte(`{"provider_id":"prov1"}`)))
			c.Request.Header.Set("Content-Type", "application/json")

			mockService.On("CreateBooking", c.Request.Context(), booking.CreateBookingInput{UserID: "u1", ProviderID: "prov1"}).Return(nil, tc.err)

			handler.create(c)

			assert.Equal(t, tc.expected, w.Code)
			assert.Contains(t, w.Body.String(), tc.err.Error())
		})
	}
}

func TestBookingHandler_create_MissingProvider(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(userKey, customer)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader([]byte(`{"slot":"x"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestBookingHandler_create_NoUser(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader([]byte(`{"provider_id":"prov1"}`)))

	handler.create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingHandler_get(t *testing.T) {
	owned := &domain.Booking{ID: "b1", UserID: "u1", Status: domain.BookingStatusPaid}
	foreign := &domain.Booking{ID: "b2", UserID: "u2", Status: domain.BookingStatusPending}

	testCases := []struct {
		name     string
		user     *domain.User
		booking  *domain.Booking
		expected int
	}{
		{"owner", customer, owned, http.StatusOK},
		{"other user", customer, foreign, http.StatusNotFound},
		{"admin", admin, foreign, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set(userKey, tc.user)
			c.Params = gin.Params{{Key: "id", Value: tc.booking.ID}}
			c.Request = httptest.NewRequest("GET", "/bookings/"+tc.booking.ID, nil)

			mockService.On("GetBooking", c.Request.Context(), tc.booking.ID).Return(tc.booking, nil)

			handler.get(c)

			assert.Equal(t, tc.expected, w.Code)
		})
	}
}

func TestBookingHandler_listMine(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(userKey, customer)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)

	mockService.On("ListUserBookings", c.Request.Context(), "u1").Return([]domain.Booking{{ID: "b1", UserID: "u1"}}, nil)

	handler.listMine(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Booking
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 1)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	id := "b1"
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Request = httptest.NewRequest("DELETE", "/admin/bookings/"+id, nil)

	cancelled := &domain.Booking{ID: id, Status: domain.BookingStatusCancelled}
	mockService.On("CancelBooking", c.Request.Context(), id).Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response domain.Booking
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	c.Request = httptest.NewRequest("DELETE", "/admin/bookings/nope", nil)

	mockService.On("CancelBooking", c.Request.Context(), "nope").Return(nil, booking.ErrBookingNotFound)

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
