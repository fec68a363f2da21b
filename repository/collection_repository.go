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

// CollectionRepository persists catalog collections and their
// reverse-reference product lists.
type CollectionRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Collection, error)
	FindByTitle(ctx context.Context, title string) (*models.Collection, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Collection, error)
	FindAll(ctx context.Context) ([]models.Collection, error)
	Create(ctx context.Context, collection *models.Collection) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddProduct(ctx context.Context, collectionID, productID primitive.ObjectID) error
	RemoveProduct(ctx context.Context, collectionID, productID primitive.ObjectID) error
	PullProductFromAll(ctx context.Context, productID primitive.ObjectID) error
}

type collectionRepository struct {
	collection *mongo.Collection
}

func NewCollectionRepository(db *mongo.Database) CollectionRepository {
	return &collectionRepository{collection: db.Collection("collections")}
}

func (r *collectionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Collection, error) {
	var collection models.Collection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&collection)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) FindByTitle(ctx context.Context, title string) (*models.Collection, error) {
	var collection models.Collection
	err := r.collection.FindOne(ctx, bson.M{"title": title}).Decode(&collection)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Collection, error) {
	if len(ids) == 0 {
		return []models.Collection{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var collections []models.Collection
	if err := cursor.All(ctx, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *collectionRepository) FindAll(ctx context.Context) ([]models.Collection, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var collections []models.Collection
	if err := cursor.All(ctx, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *collectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	now := time.Now().UTC()
	collection.CreatedAt = now
	collection.UpdatedAt = now
	if collection.Products == nil {
		collection.Products = []primitive.ObjectID{}
	}
	result, err := r.collection.InsertOne(ctx, collection)
	if err != nil {
		return err
	}
	collection.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *collectionRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	updates["updatedAt"] = time.Now().UTC()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	return err
}

func (r *collectionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *collectionRepository) AddProduct(ctx context.Context, collectionID, productID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": collectionID},
		bson.M{
			"$addToSet": bson.M{"products": productID},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}

func (r *collectionRepository) RemoveProduct(ctx context.Context, collectionID, productID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": collectionID},
		bson.M{
			"$pull": bson.M{"products": productID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}

func (r *collectionRepository) PullProductFromAll(ctx context.Context, productID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"products": productID},
		bson.M{
			"$pull": bson.M{"products": productID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}
