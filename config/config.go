package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/chandrabs25/travelbook/internal/gateway"
	"github.com/chandrabs25/travelbook/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

func LoadRazorpayConfig() (*RazorpayConfig, error) {
	return &RazorpayConfig{
		KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
	}, nil
}

func InitRazorpayClient(config *RazorpayConfig) *gateway.Client {
	return gateway.NewClient(config.KeyID, config.KeySecret)
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.User{}, &models.Package{}, &models.Booking{})
	if err != nil {
		return nil, err
	}

	if os.Getenv("SEED_DEMO_PACKAGES") == "true" {
		seedPackages(db)
	}

	return db, nil
}

func seedPackages(db *gorm.DB) {
	four := 4
	packages := []models.Package{
		{Name: "Andaman Island Escape", Location: "Port Blair", DurationDays: 5, BasePrice: 25000, MaxPeople: &four, IsActive: true},
		{Name: "Havelock Dive Week", Location: "Havelock", DurationDays: 7, BasePrice: 42000, IsActive: true},
		{Name: "Neil Island Day Trip", Location: "Neil Island", DurationDays: 1, BasePrice: 4500, IsActive: true},
	}

	for _, pkg := range packages {
		var existing models.Package
		result := db.Where("name = ?", pkg.Name).First(&existing)
		if result.Error != nil {
			db.Create(&pkg)
		}
	}
}
