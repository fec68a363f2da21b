package repository

import (
	"context"
	"time"

	"bookrental-admin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CustomerRepository persists denormalized customer records keyed by the
// identity provider subject id.
type CustomerRepository interface {
	FindByClerkID(ctx context.Context, clerkID string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	AppendOrder(ctx context.Context, clerkID string, orderID primitive.ObjectID) (bool, error)
}

type customerRepository struct {
	collection *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) CustomerRepository {
	return &customerRepository{collection: db.Collection("customers")}
}

func (r *customerRepository) FindByClerkID(ctx context.Context, clerkID string) (*models.Customer, error) {
	var customer models.Customer
	err := r.collection.FindOne(ctx, bson.M{"clerkId": clerkID}).Decode(&customer)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, customer)
	if err != nil {
		return err
	}
	customer.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// AppendOrder pushes an order onto an existing customer. Returns false when
// no customer matched, in which case the caller creates one.
func (r *customerRepository) AppendOrder(ctx context.Context, clerkID string, orderID primitive.ObjectID) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"clerkId": clerkID},
		bson.M{
			"$push": bson.M{"orders": orderID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
