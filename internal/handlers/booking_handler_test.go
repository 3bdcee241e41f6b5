package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/chandrabs25/travelbook/internal/models"
)

func bookingRows(id uint, userID any, paymentStatus, status string, totalAmount float64, details any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "package_id", "total_people", "start_date", "end_date",
		"status", "total_amount", "payment_status", "payment_details",
		"special_requests", "guest_name", "guest_email", "guest_phone",
		"created_at", "updated_at",
	}).AddRow(
		id, userID, 5, 2,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		status, totalAmount, paymentStatus, details,
		"", "Asha Guest", "asha@example.com", "+911234567890",
		time.Now(), time.Now(),
	)
}

func TestResolveOwnerSessionWinsOverGuestFields(t *testing.T) {
	userID := uint(9)
	req := &CreateBookingRequest{
		GuestName:  "Asha Guest",
		GuestEmail: "asha@example.com",
		GuestPhone: "+911234567890",
	}

	var booking models.Booking
	err := resolveOwner(&booking, &userID, req)
	assert.NoError(t, err)
	assert.NotNil(t, booking.UserID)
	assert.Equal(t, uint(9), *booking.UserID)
	assert.Nil(t, booking.GuestName)
	assert.Nil(t, booking.GuestEmail)
	assert.Nil(t, booking.GuestPhone)
}

func TestResolveOwnerGuestFieldsRequired(t *testing.T) {
	var booking models.Booking
	err := resolveOwner(&booking, nil, &CreateBookingRequest{
		GuestName:  "Asha Guest",
		GuestEmail: "asha@example.com",
	})
	assert.Error(t, err)

	err = resolveOwner(&booking, nil, &CreateBookingRequest{
		GuestName:  "Asha Guest",
		GuestEmail: "asha@example.com",
		GuestPhone: "+911234567890",
	})
	assert.NoError(t, err)
	assert.Nil(t, booking.UserID)
	assert.Equal(t, "Asha Guest", *booking.GuestName)
}

func TestCreateBookingMissingGuestFields(t *testing.T) {
	gormDB, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "packages"`).
		WillReturnRows(packageRows(5, 10000, 4))

	router := newTestRouter(gormDB, nil, nil)
	body := `{"package_id":5,"start_date":"2025-06-01","end_date":"2025-06-05","guests":2,"amount":23600,"guest_name":"Asha Guest","guest_email":"asha@example.com"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingInvalidDates(t *testing.T) {
	gormDB, _ := newMockDB(t)
	router := newTestRouter(gormDB, nil, nil)

	bodies := []string{
		`{"package_id":5,"start_date":"2025-06-05","end_date":"2025-06-05","guests":2,"amount":23600}`,
		`{"package_id":5,"start_date":"2025-06-06","end_date":"2025-06-05","guests":2,"amount":23600}`,
		`{"package_id":5,"start_date":"someday","end_date":"2025-06-05","guests":2,"amount":23600}`,
		`{"package_id":5,"end_date":"2025-06-05","guests":2,"amount":23600}`,
		`{"package_id":5,"start_date":"2025-06-01","end_date":"2025-06-05","guests":2}`,
	}
	for _, body := range bodies {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestCreateBookingGuest(t *testing.T) {
	gormDB, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "packages"`).
		WillReturnRows(packageRows(5, 10000, 4))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(bookingRows(12, nil, "pending", "pending", 23600, nil))

	router := newTestRouter(gormDB, nil, nil)
	body := `{"package_id":5,"start_date":"2025-06-01","end_date":"2025-06-05","guests":2,"amount":23600,"guest_name":"Asha Guest","guest_email":"asha@example.com","guest_phone":"+911234567890"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	data := dataMap(t, resp)
	assert.Equal(t, float64(12), data["id"])
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "pending", data["payment_status"])
	assert.Equal(t, 23600.0, data["total_amount"])
	assert.Nil(t, data["user_id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	gormDB, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "packages"`).
		WillReturnRows(packageRows(5, 10000, 4))

	router := newTestRouter(gormDB, nil, nil)
	body := `{"package_id":5,"start_date":"2025-06-01","end_date":"2025-06-05","guests":5,"amount":23600,"guest_name":"Asha Guest","guest_email":"asha@example.com","guest_phone":"+911234567890"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingGuest(t *testing.T) {
	gormDB, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(bookingRows(12, nil, "pending", "pending", 23600, nil))
	mock.ExpectQuery(`SELECT \* FROM "packages"`).
		WillReturnRows(packageRows(5, 10000, 4))

	router := newTestRouter(gormDB, nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/12", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := dataMap(t, decodeResponse(t, rec))
	assert.Equal(t, float64(12), data["id"])
}

func TestGetBookingOwnedRequiresSession(t *testing.T) {
	gormDB, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(bookingRows(12, 9, "pending", "pending", 23600, nil))
	mock.ExpectQuery(`SELECT \* FROM "packages"`).
		WillReturnRows(packageRows(5, 10000, 4))

	router := newTestRouter(gormDB, nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/12", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetBookingVoucher(t *testing.T) {
	t.Setenv("JWT_SECRET", "vouchersecret")

	details := []byte(`{"razorpay_order_id":"order_ABC123"}`)
	gormDB, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(bookingRows(12, nil, "paid", "confirmed", 23600, details))
	mock.ExpectQuery(`SELECT \* FROM "packages"`).
		WillReturnRows(packageRows(5, 10000, 4))

	router := newTestRouter(gormDB, nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/12/voucher", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestGetBookingVoucherUnpaid(t *testing.T) {
	gormDB, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(bookingRows(12, nil, "pending", "pending", 23600, nil))
	mock.ExpectQuery(`SELECT \* FROM "packages"`).
		WillReturnRows(packageRows(5, 10000, 4))

	router := newTestRouter(gormDB, nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/12/voucher", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
