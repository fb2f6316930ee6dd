// controllers/hotel_controller.go
package controllers

import (
	"log"
	"net/http"
	"strings"

	"chillnest-backend/config"
	"chillnest-backend/models"
	"chillnest-backend/utils"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// 1. Get Hotels (GET /api/hotels[?city=...])
// ----------------------------------------------------

func GetHotels(c *gin.Context) {
	q := config.DB.Preload("Rooms")

	if city := strings.TrimSpace(c.Query("city")); city != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(city))
	}

	var hotels []models.Hotel
	if err := q.Find(&hotels).Error; err != nil {
		log.Printf("GetHotels: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list hotels")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, hotels)
}

// ----------------------------------------------------
// 2. Get Hotel (GET /api/hotels/:id)
// ----------------------------------------------------

func GetHotel(c *gin.Context) {
	var hotel models.Hotel
	if err := config.DB.Preload("Rooms").First(&hotel, c.Param("id")).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "Hotel not found")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, hotel)
}
