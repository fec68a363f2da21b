package repository

import (
	"context"
	"time"

	"bookrental-admin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepository persists orders.
type OrderRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	// FindLatestByCustomerAndProduct locates the most recent order owned by
	// the given customer that contains a line item for the given product.
	// The created_at tie-break makes the reservation->order link
	// deterministic when several orders qualify.
	FindLatestByCustomerAndProduct(ctx context.Context, clerkID string, productID primitive.ObjectID) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Save(ctx context.Context, order *models.Order) error
}

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{collection: db.Collection("orders")}
}

func (r *orderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindLatestByCustomerAndProduct(ctx context.Context, clerkID string, productID primitive.ObjectID) (*models.Order, error) {
	filter := bson.M{
		"customerClerkId":  clerkID,
		"products.product": productID,
	}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var order models.Order
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// Save replaces the whole document; line items are mutated in memory before
// persisting.
func (r *orderRepository) Save(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	return err
}
