// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"chillnest-backend/models"
	"chillnest-backend/services"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	UserID        uint   `json:"user_id" binding:"required"`
	RoomID        uint   `json:"room_id" binding:"required"`
	CheckIn       string `json:"check_in" binding:"required"`
	CheckOut      string `json:"check_out" binding:"required"`
	GuestName     string `json:"guest_name" binding:"required"`
	GuestPhone    string `json:"guest_phone" binding:"required"`
	VoucherCode   string `json:"voucher_code,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

type CheckAvailabilityRequest struct {
	RoomID   uint   `json:"room_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
	RoomSvc    *services.RoomService
	VoucherSvc *services.VoucherService
}

func NewBookingController(
	bookingSvc *services.BookingService,
	roomSvc *services.RoomService,
	voucherSvc *services.VoucherService,
) *BookingController {
	return &BookingController{
		BookingSvc: bookingSvc,
		RoomSvc:    roomSvc,
		VoucherSvc: voucherSvc,
	}
}

// parseDate accepts the date-only form the web client sends or full RFC3339
// from the mobile app.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func userIDFromQuery(c *gin.Context) (uint, bool) {
	raw := c.Query("userId")
	if raw == "" {
		raw = c.Query("user_id")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// bookingErrorStatus maps business errors to client status codes.
func bookingErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrBookingNotFound), errors.Is(err, services.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidUser),
		errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrRoomUnavailable),
		errors.Is(err, services.ErrAlreadyCanceled),
		errors.Is(err, services.ErrCannotCancelPaid),
		errors.Is(err, services.ErrInvalidTransition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// POST /api/bookings
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "details": err.Error()})
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid check_in format"})
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid check_out format"})
		return
	}

	booking, price, err := bc.BookingSvc.CreateBooking(services.CreateBookingInput{
		UserID:        req.UserID,
		RoomID:        req.RoomID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		GuestName:     req.GuestName,
		GuestPhone:    req.GuestPhone,
		PaymentMethod: req.PaymentMethod,
		VoucherCode:   req.VoucherCode,
	})
	if err != nil {
		status := bookingErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("CreateBooking: %v", err)
			c.JSON(status, gin.H{"message": "Failed to create booking"})
			return
		}
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookingId":       booking.ID,
		"referenceCode":   booking.ReferenceCode,
		"status":          booking.Status,
		"checkIn":         booking.CheckIn,
		"checkOut":        booking.CheckOut,
		"nights":          price.Nights,
		"subTotal":        price.SubTotal,
		"discount":        price.Discount,
		"total":           price.Total,
		"voucherApplied":  price.VoucherApplied,
		"voucherReason":   price.VoucherReason,
		"paymentDeadline": booking.PaymentDeadline,
		"message":         "Booking created successfully",
	})
}

// GET /api/bookings?userId=123
func (bc *BookingController) GetUserBookings(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
		return
	}

	bookings, err := bc.BookingSvc.GetUserBookings(userID)
	if err != nil {
		log.Printf("GetUserBookings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/:id?userId=123
func (bc *BookingController) GetBookingDetails(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking id"})
		return
	}

	booking, err := bc.BookingSvc.GetBookingDetails(uint(id), userID)
	if err != nil {
		status := bookingErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("GetBookingDetails: %v", err)
			c.JSON(status, gin.H{"message": "Failed to load booking"})
			return
		}
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/cancel?userId=123
func (bc *BookingController) CancelBooking(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking id"})
		return
	}

	booking, err := bc.BookingSvc.CancelBooking(uint(id), userID)
	if err != nil {
		status := bookingErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("CancelBooking: %v", err)
			c.JSON(status, gin.H{"message": "Failed to cancel booking"})
			return
		}
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Booking cancelled successfully",
		"bookingId": booking.ID,
		"status":    booking.Status,
	})
}

// POST /api/bookings/:id/confirm  — admin confirms an online payment
func (bc *BookingController) ConfirmPayment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking id"})
		return
	}

	booking, err := bc.BookingSvc.ConfirmPayment(uint(id))
	if err != nil {
		status := bookingErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("ConfirmPayment: %v", err)
			c.JSON(status, gin.H{"message": "Failed to confirm payment"})
			return
		}
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookingId": booking.ID, "status": booking.Status})
}

// POST /api/bookings/:id/paid  — admin marks a confirmed booking settled
func (bc *BookingController) MarkPaid(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking id"})
		return
	}

	booking, err := bc.BookingSvc.MarkPaid(uint(id))
	if err != nil {
		status := bookingErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("MarkPaid: %v", err)
			c.JSON(status, gin.H{"message": "Failed to mark booking paid"})
			return
		}
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookingId": booking.ID, "status": booking.Status})
}

// POST /api/bookings/check-availability
func (bc *BookingController) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "details": err.Error()})
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid check_in format"})
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid check_out format"})
		return
	}

	available, err := bc.RoomSvc.IsRoomAvailable(req.RoomID, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
			return
		}
		log.Printf("CheckAvailability: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check availability"})
		return
	}

	message := "Room is available"
	if !available {
		message = "Room is not available for the selected dates"
	}
	c.JSON(http.StatusOK, gin.H{"available": available, "message": message})
}

// GET /api/bookings/available-vouchers?userId=123
func (bc *BookingController) GetAvailableVouchers(c *gin.Context) {
	// userId is optional here: without it the endpoint lists every
	// still-redeemable voucher.
	userID, _ := userIDFromQuery(c)

	vouchers, err := bc.VoucherSvc.AvailableVouchers(userID)
	if err != nil {
		log.Printf("GetAvailableVouchers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list vouchers"})
		return
	}

	out := make([]gin.H, 0, len(vouchers))
	for _, v := range vouchers {
		display := strconv.FormatFloat(v.DiscountValue, 'f', -1, 64)
		if v.DiscountType == models.DiscountTypePercent {
			display += "%"
		} else {
			display += " VND"
		}
		out = append(out, gin.H{
			"voucherId":       v.ID,
			"code":            v.Code,
			"description":     v.Description,
			"discountType":    v.DiscountType,
			"discountValue":   v.DiscountValue,
			"minOrderValue":   v.MinOrderValue,
			"expiryDate":      v.ExpiryDate,
			"quantity":        v.Quantity,
			"discountDisplay": display,
		})
	}

	c.JSON(http.StatusOK, out)
}
