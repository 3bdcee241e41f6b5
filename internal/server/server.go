package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/chandrabs25/travelbook/config"
	"github.com/chandrabs25/travelbook/internal/gateway"
	"github.com/chandrabs25/travelbook/internal/handlers"
	"github.com/chandrabs25/travelbook/internal/helpers"
	"github.com/chandrabs25/travelbook/internal/middleware"
)

var bookingDateValidator validator.Func = func(fl validator.FieldLevel) bool {
	_, err := helpers.ParseDate(fl.Field().String())
	return err == nil
}

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	rzpCfg, err := config.LoadRazorpayConfig()
	if err != nil {
		return fmt.Errorf("failed to load razorpay config: %v", err)
	}
	rzpClient := config.InitRazorpayClient(rzpCfg)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookingdate", bookingDateValidator)
	}

	r := gin.Default()

	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	setupRoutes(r, db, rzpClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, rzpClient *gateway.Client) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.RazorpayMiddleware(rzpClient))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		packagePublic := public.Group("/packages")
		{
			packagePublic.GET("", handlers.ListPackages)
			packagePublic.GET("/:id", handlers.GetPackage)
		}

		public.GET("/availability", handlers.CheckAvailability)

		payments := public.Group("/payments")
		{
			payments.POST("/order", handlers.CreatePaymentOrder)
			payments.POST("/verify", handlers.VerifyPayment)
		}
	}

	// Booking creation serves guests too; the session is picked up when
	// present and wins over any guest contact fields in the body.
	optional := r.Group("/v1")
	optional.Use(middleware.OptionalJWTAuthMiddleware())
	{
		optional.POST("/bookings", handlers.CreateBooking)
		optional.GET("/bookings/:id", handlers.GetBooking)
		optional.GET("/bookings/:id/voucher", handlers.GetBookingVoucher)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/bookings", handlers.ListBookings)
	}
}
