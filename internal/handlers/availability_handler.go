package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chandrabs25/travelbook/internal/helpers"
	"github.com/chandrabs25/travelbook/internal/models"
)

// TaxRate is the flat tax applied on top of the base price.
const TaxRate = 0.18

const (
	ReasonCapacityExceeded = "CAPACITY_EXCEEDED"
	ReasonDateConflict     = "DATE_CONFLICT"
)

type Pricing struct {
	BasePrice float64 `json:"base_price"`
	Taxes     float64 `json:"taxes"`
	Total     float64 `json:"total"`
}

type AvailabilityResult struct {
	Available bool     `json:"available"`
	Reason    string   `json:"reason,omitempty"`
	Pricing   *Pricing `json:"pricing,omitempty"`
}

func computePricing(basePrice float64, guests int) Pricing {
	base := helpers.Round2(basePrice * float64(guests))
	taxes := helpers.Round2(base * TaxRate)
	return Pricing{
		BasePrice: base,
		Taxes:     taxes,
		Total:     helpers.Round2(base + taxes),
	}
}

// countOverlapping counts held bookings whose date range overlaps
// [startDate, endDate). Ranges are half-open: a booking ending the day
// another starts does not conflict.
func countOverlapping(gormDB *gorm.DB, packageID uint, startDate, endDate time.Time) (int64, error) {
	var conflicts int64
	err := gormDB.Model(&models.Booking{}).
		Where("package_id = ? AND status IN ? AND start_date < ? AND end_date > ?",
			packageID,
			[]string{models.BookingStatusPending, models.BookingStatusConfirmed},
			endDate, startDate).
		Count(&conflicts).Error
	return conflicts, err
}

func CheckAvailability(c *gin.Context) {
	packageID, err := helpers.StringToUint(c.Query("package_id"))
	if err != nil || packageID == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid or missing package_id.")
		return
	}

	startDate, err := helpers.ParseDate(c.Query("start_date"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid or missing start_date, expected YYYY-MM-DD.")
		return
	}
	endDate, err := helpers.ParseDate(c.Query("end_date"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid or missing end_date, expected YYYY-MM-DD.")
		return
	}
	if !startDate.Before(endDate) {
		helpers.RespondWithError(c, http.StatusBadRequest, "start_date must be before end_date.")
		return
	}

	guests, err := helpers.StringToInt(c.Query("guests"))
	if err != nil || guests <= 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid or missing guests.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var pkg models.Package
	if err := gormDB.Where("id = ? AND is_active = ?", packageID, true).First(&pkg).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Package not found.")
		return
	}

	if pkg.MaxPeople != nil && guests > *pkg.MaxPeople {
		helpers.RespondWithData(c, http.StatusOK, AvailabilityResult{
			Available: false,
			Reason:    ReasonCapacityExceeded,
		})
		return
	}

	// Read-only check; nothing stops two callers passing it for the
	// same dates before either inserts (known gap).
	conflicts, err := countOverlapping(gormDB, packageID, startDate, endDate)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to check availability.")
		return
	}
	if conflicts > 0 {
		helpers.RespondWithData(c, http.StatusOK, AvailabilityResult{
			Available: false,
			Reason:    ReasonDateConflict,
		})
		return
	}

	pricing := computePricing(pkg.BasePrice, guests)
	helpers.RespondWithData(c, http.StatusOK, AvailabilityResult{
		Available: true,
		Pricing:   &pricing,
	})
}
