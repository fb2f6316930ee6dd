// controllers/room_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"chillnest-backend/services"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

// GET /api/rooms?hotelId=1
func (rc *RoomController) GetRooms(c *gin.Context) {
	var hotelID uint
	if raw := c.Query("hotelId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid hotelId"})
			return
		}
		hotelID = uint(id)
	}

	rooms, err := rc.RoomSvc.GetRooms(hotelID)
	if err != nil {
		log.Printf("GetRooms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list rooms"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// GET /api/rooms/:id
func (rc *RoomController) GetRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid room id"})
		return
	}

	room, err := rc.RoomSvc.GetRoom(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
			return
		}
		log.Printf("GetRoom: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load room"})
		return
	}

	c.JSON(http.StatusOK, room)
}
