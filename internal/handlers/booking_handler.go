package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/chandrabs25/travelbook/internal/helpers"
	"github.com/chandrabs25/travelbook/internal/middleware"
	"github.com/chandrabs25/travelbook/internal/models"
)

// resolveOwner assigns booking ownership. A session wins over guest
// fields: the booking is stored under the user and any supplied guest
// contact details are dropped. Without a session all three guest
// fields are required.
func resolveOwner(booking *models.Booking, userID *uint, req *CreateBookingRequest) error {
	if userID != nil {
		booking.UserID = userID
		return nil
	}
	if req.GuestName == "" || req.GuestEmail == "" || req.GuestPhone == "" {
		return errors.New("Guest name, email and phone are required.")
	}
	booking.GuestName = &req.GuestName
	booking.GuestEmail = &req.GuestEmail
	booking.GuestPhone = &req.GuestPhone
	return nil
}

type CreateBookingRequest struct {
	PackageID       uint    `json:"package_id" binding:"required"`
	StartDate       string  `json:"start_date" binding:"required,bookingdate"`
	EndDate         string  `json:"end_date" binding:"required,bookingdate"`
	Guests          int     `json:"guests" binding:"required,min=1"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	SpecialRequests string  `json:"special_requests"`
	GuestName       string  `json:"guest_name"`
	GuestEmail      string  `json:"guest_email" binding:"omitempty,email"`
	GuestPhone      string  `json:"guest_phone"`
}

func CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD.")
		return
	}
	endDate, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD.")
		return
	}
	if !startDate.Before(endDate) {
		helpers.RespondWithError(c, http.StatusBadRequest, "start_date must be before end_date.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var pkg models.Package
	if err := gormDB.Where("id = ? AND is_active = ?", req.PackageID, true).First(&pkg).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Package not found.")
		return
	}
	if pkg.MaxPeople != nil && req.Guests > *pkg.MaxPeople {
		helpers.RespondWithError(c, http.StatusBadRequest, "Guest count exceeds package capacity.")
		return
	}

	booking := models.Booking{
		PackageID:       req.PackageID,
		TotalPeople:     req.Guests,
		StartDate:       startDate,
		EndDate:         endDate,
		Status:          models.BookingStatusPending,
		TotalAmount:     helpers.Round2(req.Amount),
		PaymentStatus:   models.PaymentStatusPending,
		SpecialRequests: req.SpecialRequests,
	}

	var sessionUser *uint
	if userID, ok := middleware.UserIDFromContext(c); ok {
		sessionUser = &userID
	}
	if err := resolveOwner(&booking, sessionUser, &req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	// Deliberately no overlap re-check here; callers are expected to
	// have gone through the availability endpoint first.
	if err := gormDB.Create(&booking).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking.")
		return
	}

	var created models.Booking
	if err := gormDB.First(&created, booking.ID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to load created booking.")
		return
	}

	helpers.RespondWithData(c, http.StatusCreated, created)
}

func ListBookings(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var bookings []models.Booking
	if err := gormDB.Preload("Package").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch bookings.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, bookings)
}

// loadOwnedBooking fetches a booking and enforces ownership: bookings
// under a user account require that user's session, guest bookings are
// addressable by id alone since guests cannot authenticate.
func loadOwnedBooking(c *gin.Context) (*models.Booking, bool) {
	bookingID, err := helpers.StringToUint(c.Param("id"))
	if err != nil || bookingID == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return nil, false
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	gormDB := db.(*gorm.DB)

	var booking models.Booking
	if err := gormDB.Preload("Package").First(&booking, bookingID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
		return nil, false
	}

	if booking.UserID != nil {
		userID, ok := middleware.UserIDFromContext(c)
		if !ok || userID != *booking.UserID {
			helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view this booking.")
			return nil, false
		}
	}

	return &booking, true
}

func GetBooking(c *gin.Context) {
	booking, ok := loadOwnedBooking(c)
	if !ok {
		return
	}
	helpers.RespondWithData(c, http.StatusOK, booking)
}

// GetBookingVoucher renders a signed QR voucher once a booking is paid.
func GetBookingVoucher(c *gin.Context) {
	booking, ok := loadOwnedBooking(c)
	if !ok {
		return
	}

	if booking.PaymentStatus != models.PaymentStatusPaid {
		helpers.RespondWithError(c, http.StatusForbidden, "Voucher is available after payment.")
		return
	}

	orderID, _ := booking.PaymentDetails["razorpay_order_id"].(string)
	signature := helpers.VoucherSignature(booking.ID, orderID, os.Getenv("JWT_SECRET"))
	payload := fmt.Sprintf("booking:%d;order:%s;signature:%s", booking.ID, orderID, signature)

	qrImage, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate voucher.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
