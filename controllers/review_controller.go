// controllers/review_controller.go
package controllers

import (
	"log"
	"net/http"

	"chillnest-backend/config"
	"chillnest-backend/models"
	"chillnest-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateReviewRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	HotelID uint   `json:"hotel_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// GET /api/hotels/:id/reviews
func GetHotelReviews(c *gin.Context) {
	var reviews []models.Review
	if err := config.DB.
		Preload("User").
		Where("hotel_id = ?", c.Param("id")).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		log.Printf("GetHotelReviews: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list reviews")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, reviews)
}

// POST /api/reviews
func CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var hotel models.Hotel
	if err := config.DB.First(&hotel, req.HotelID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "Hotel not found")
		return
	}

	review := models.Review{
		UserID:  req.UserID,
		HotelID: req.HotelID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := config.DB.Create(&review).Error; err != nil {
		log.Printf("CreateReview: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create review")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, review)
}
