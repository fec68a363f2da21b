package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShippingAddress is captured from the payment provider at checkout.
type ShippingAddress struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

// Empty reports whether no address field carries a value.
func (a ShippingAddress) Empty() bool {
	return a.Street == "" && a.City == "" && a.State == "" && a.PostalCode == "" && a.Country == ""
}

// OrderItem is one product entry within an order. Its borrow lifecycle is
// independent of the order's overall status.
type OrderItem struct {
	Product        *primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	Quantity       int                 `bson:"quantity" json:"quantity"`
	BorrowDuration int                 `bson:"borrowDuration,omitempty" json:"borrowDuration,omitempty"`
	ReturnDate     *time.Time          `bson:"returnDate,omitempty" json:"returnDate,omitempty"`
	Size           string              `bson:"size,omitempty" json:"size,omitempty"`
	Color          string              `bson:"color,omitempty" json:"color,omitempty"`
	Status         ItemStatus          `bson:"status" json:"status"`
}

// Order is a borrow transaction owned by a customer (identified by the
// identity provider subject id, not an internal reference).
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CustomerClerkID string             `bson:"customerClerkId" json:"customerClerkId"`
	Products        []OrderItem        `bson:"products" json:"products"`
	ShippingAddress *ShippingAddress   `bson:"shippingAddress,omitempty" json:"shippingAddress,omitempty"`
	ShippingRate    string             `bson:"shippingRate,omitempty" json:"shippingRate,omitempty"`
	Note            string             `bson:"note,omitempty" json:"note,omitempty"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	OrderStatus     OrderStatus        `bson:"orderStatus" json:"orderStatus"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ItemIndex returns the index of the line item referencing the given
// product, or -1.
func (o *Order) ItemIndex(productID primitive.ObjectID) int {
	for i, item := range o.Products {
		if item.Product != nil && *item.Product == productID {
			return i
		}
	}
	return -1
}
