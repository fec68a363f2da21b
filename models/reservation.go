package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reservation is a customer's request to borrow a specific product for a
// date range. The link to its derived order is reconstructed by query
// (customer id + product reference) at reconciliation time.
type Reservation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID          string             `bson:"userId" json:"userId"`
	ProductID       primitive.ObjectID `bson:"productId" json:"productId"`
	Status          ReservationStatus  `bson:"status" json:"status"`
	ReservationDate time.Time          `bson:"reservationDate" json:"reservationDate"`
	PickupDate      *time.Time         `bson:"pickupDate,omitempty" json:"pickupDate,omitempty"`
	ReturnDate      *time.Time         `bson:"returnDate,omitempty" json:"returnDate,omitempty"`
	Note            string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
