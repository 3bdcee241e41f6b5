package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chandrabs25/travelbook/internal/helpers"
	"github.com/chandrabs25/travelbook/internal/models"
)

func ListPackages(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var packages []models.Package
	if err := gormDB.Where("is_active = ?", true).Order("name").Find(&packages).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch packages.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, packages)
}

func GetPackage(c *gin.Context) {
	packageID, err := helpers.StringToUint(c.Param("id"))
	if err != nil || packageID == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid package ID.")
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

	helpers.RespondWithData(c, http.StatusOK, pkg)
}
