package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection groups products. Products is the reverse reference list kept in
// sync with Product.Collections.
type Collection struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description"`
	Image       string               `bson:"image" json:"image"`
	Products    []primitive.ObjectID `bson:"products" json:"products"`
	CreatedBy   string               `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
