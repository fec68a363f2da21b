package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a denormalized identity + order-history record keyed by the
// identity provider subject id. Created on first order, appended to after.
type Customer struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	ClerkID   string               `bson:"clerkId" json:"clerkId"`
	Name      string               `bson:"name" json:"name"`
	Email     string               `bson:"email" json:"email"`
	Orders    []primitive.ObjectID `bson:"orders" json:"orders"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
