package controllers

import (
	"net/http"

	apperrors "bookrental-admin/errors"
	"bookrental-admin/logger"
	"bookrental-admin/models"
	"bookrental-admin/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReservationController struct {
	reservations services.ReservationService
	validator    *RequestValidator
}

func NewReservationController(reservations services.ReservationService) *ReservationController {
	return &ReservationController{reservations: reservations, validator: NewRequestValidator()}
}

// GetReservations lists all reservations with products populated, newest
// first.
func (rc *ReservationController) GetReservations(c *gin.Context) {
	reservations, err := rc.reservations.ListReservations(c.Request.Context())
	if err != nil {
		logger.Error(c, "Failed to fetch reservations", err)
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetReservation returns a single reservation with its product populated.
func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, err := rc.validator.ParseObjectID(c, "reservationId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	reservation, err := rc.reservations.GetReservation(c.Request.Context(), id)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation persists a reservation status change and reconciles the
// matching order's statuses.
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, err := rc.validator.ParseObjectID(c, "reservationId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status is required"})
		return
	}

	result, err := rc.reservations.UpdateStatus(c.Request.Context(), id, models.ReservationStatus(body.Status))
	if err != nil {
		logger.Error(c, "Failed to update reservation", err, zap.String("reservation_id", id.Hex()))
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Updated successfully",
		"reservation": result.Reservation,
		"order":       result.Order,
	})
}
