package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chandrabs25/travelbook/internal/helpers"
	"github.com/chandrabs25/travelbook/internal/middleware"
	"github.com/chandrabs25/travelbook/internal/models"
)

const defaultCurrency = "INR"

type CreateOrderRequest struct {
	BookingID uint    `json:"booking_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Currency  string  `json:"currency"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	BookingID uint   `json:"booking_id" binding:"required"`
}

func CreatePaymentOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	rzp := middleware.GetRazorpayClient(c)
	if !rzp.Configured() {
		log.Println("razorpay credentials are not configured")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment gateway is not configured.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var booking models.Booking
	if err := gormDB.First(&booking, req.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to load booking.")
		return
	}

	if booking.PaymentStatus == models.PaymentStatusPaid {
		helpers.RespondWithError(c, http.StatusConflict, "Booking is already paid.")
		return
	}

	// The charge is always the stored total; a client asserting any
	// other amount is rejected before the gateway is touched.
	if helpers.ToMinorUnits(req.Amount) != helpers.ToMinorUnits(booking.TotalAmount) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Amount does not match the booking total.")
		return
	}

	receipt := fmt.Sprintf("rcpt-%s", uuid.New().String())
	order, err := rzp.CreateOrder(helpers.ToMinorUnits(booking.TotalAmount), currency, receipt)
	if err != nil {
		log.Printf("razorpay order create failed for booking %d: %v", booking.ID, err)
		helpers.RespondWithError(c, http.StatusBadGateway, "Failed to create payment order.")
		return
	}

	details := booking.PaymentDetails.Merge(map[string]any{
		"razorpay_order_id": order.ID,
		"receipt":           order.Receipt,
	})
	if err := gormDB.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Update("payment_details", details).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment order.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{
		"order_id":   order.ID,
		"key_id":     rzp.KeyID,
		"amount":     order.Amount,
		"currency":   order.Currency,
		"booking_id": booking.ID,
	})
}

// VerifyPayment settles a booking after a gateway callback. The
// transition pending -> paid happens at most once; repeated callbacks
// for an already-paid booking succeed without writing.
func VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	rzp := middleware.GetRazorpayClient(c)
	if !rzp.Configured() {
		log.Println("razorpay credentials are not configured")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment gateway is not configured.")
		return
	}

	if !helpers.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature, rzp.KeySecret) {
		// Deliberately generic; a mismatch is treated as a forgery
		// attempt, not a retryable error.
		helpers.RespondWithError(c, http.StatusBadRequest, "Payment verification failed.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var booking models.Booking
	if err := gormDB.First(&booking, req.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to load booking.")
		return
	}

	if booking.PaymentStatus == models.PaymentStatusPaid {
		helpers.RespondWithMessage(c, http.StatusOK, "Payment already verified.", gin.H{
			"booking_id":     booking.ID,
			"status":         booking.Status,
			"payment_status": booking.PaymentStatus,
		})
		return
	}

	details := booking.PaymentDetails.Merge(map[string]any{
		"razorpay_order_id":   req.OrderID,
		"razorpay_payment_id": req.PaymentID,
		"verified":            true,
		"verified_at":         time.Now().UTC().Format(time.RFC3339),
	})

	// Guarded write: the WHERE clause closes the race between the read
	// above and this update when the gateway delivers twice.
	result := gormDB.Model(&models.Booking{}).
		Where("id = ? AND payment_status <> ?", booking.ID, models.PaymentStatusPaid).
		Updates(map[string]any{
			"payment_status":  models.PaymentStatusPaid,
			"status":          models.BookingStatusConfirmed,
			"payment_details": details,
		})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking.")
		return
	}

	if result.RowsAffected == 0 {
		// Another callback won the race; paid is still a success.
		var current models.Booking
		if err := gormDB.First(&current, booking.ID).Error; err == nil &&
			current.PaymentStatus == models.PaymentStatusPaid {
			helpers.RespondWithMessage(c, http.StatusOK, "Payment already verified.", gin.H{
				"booking_id":     current.ID,
				"status":         current.Status,
				"payment_status": current.PaymentStatus,
			})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking.")
		return
	}

	helpers.RespondWithMessage(c, http.StatusOK, "Payment verified successfully.", gin.H{
		"booking_id":     booking.ID,
		"status":         models.BookingStatusConfirmed,
		"payment_status": models.PaymentStatusPaid,
	})
}
