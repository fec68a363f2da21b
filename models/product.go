package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entity. Collections holds the forward side of the
// product<->collection membership; the reverse side lives on
// Collection.Products and both are maintained together.
type Product struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Media       []string             `bson:"media" json:"media"`
	Category    string               `bson:"category" json:"category"`
	Collections []primitive.ObjectID `bson:"collections" json:"collections"`
	Tags        []string             `bson:"tags" json:"tags"`
	Sizes       []string             `bson:"sizes" json:"sizes"`
	Colors      []string             `bson:"colors" json:"colors"`
	Price       Price                `bson:"price" json:"price"`
	Expense     Price                `bson:"expense" json:"expense"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
