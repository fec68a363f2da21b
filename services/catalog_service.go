package services

import (
	"context"
	"errors"
	"net/http"

	"bookrental-admin/database"
	apperrors "bookrental-admin/errors"
	"bookrental-admin/models"
	"bookrental-admin/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CollectionDetail is a collection with its member products populated.
type CollectionDetail struct {
	models.Collection
	Products []models.Product `json:"products"`
}

// ProductDetail is a product with its collections populated.
type ProductDetail struct {
	models.Product
	Collections []models.Collection `json:"collections"`
}

type CollectionInput struct {
	Title       string
	Description string
	Image       string
}

type ProductInput struct {
	Title       string
	Description string
	Media       []string
	Category    string
	Collections []primitive.ObjectID
	Tags        []string
	Sizes       []string
	Colors      []string
	Price       models.Price
	Expense     models.Price
}

// CatalogService owns collection/product CRUD and keeps the two
// cross-reference lists (Collection.Products and Product.Collections)
// symmetric. Every multi-document maintenance step runs in one transaction.
type CatalogService interface {
	ListCollections(ctx context.Context) ([]models.Collection, error)
	GetCollection(ctx context.Context, id primitive.ObjectID) (*CollectionDetail, error)
	CreateCollection(ctx context.Context, createdBy string, input CollectionInput) (*models.Collection, error)
	UpdateCollection(ctx context.Context, id primitive.ObjectID, input CollectionInput) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id primitive.ObjectID) error

	ListProducts(ctx context.Context) ([]ProductDetail, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*ProductDetail, error)
	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, input ProductInput) (*ProductDetail, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	RelatedProducts(ctx context.Context, id primitive.ObjectID) ([]models.Product, error)
}

type catalogService struct {
	collections repository.CollectionRepository
	products    repository.ProductRepository
	tx          database.Transactor
	logger      *zap.Logger
}

func NewCatalogService(
	collections repository.CollectionRepository,
	products repository.ProductRepository,
	tx database.Transactor,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{collections: collections, products: products, tx: tx, logger: logger}
}

func (s *catalogService) ListCollections(ctx context.Context) ([]models.Collection, error) {
	collections, err := s.collections.FindAll(ctx)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch collections", err)
	}
	return collections, nil
}

func (s *catalogService) GetCollection(ctx context.Context, id primitive.ObjectID) (*CollectionDetail, error) {
	collection, err := s.collections.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(http.StatusNotFound, "Collection not found", nil)
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch collection", err)
	}

	products, err := s.products.FindByIDs(ctx, collection.Products)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch collection products", err)
	}
	return &CollectionDetail{Collection: *collection, Products: products}, nil
}

func (s *catalogService) CreateCollection(ctx context.Context, createdBy string, input CollectionInput) (*models.Collection, error) {
	if _, err := s.collections.FindByTitle(ctx, input.Title); err == nil {
		return nil, apperrors.New(http.StatusBadRequest, "Collection already exists", nil)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to check collection title", err)
	}

	collection := &models.Collection{
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		CreatedBy:   createdBy,
	}
	if err := s.collections.Create(ctx, collection); err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to create collection", err)
	}

	s.logger.Info("Collection created", zap.String("collection_id", collection.ID.Hex()))
	return collection, nil
}

func (s *catalogService) UpdateCollection(ctx context.Context, id primitive.ObjectID, input CollectionInput) (*models.Collection, error) {
	if _, err := s.collections.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(http.StatusNotFound, "Collection not found", nil)
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch collection", err)
	}

	updates := bson.M{
		"title":       input.Title,
		"description": input.Description,
		"image":       input.Image,
	}
	if err := s.collections.Update(ctx, id, updates); err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to update collection", err)
	}

	collection, err := s.collections.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch collection", err)
	}
	return collection, nil
}

// DeleteCollection removes the collection and pulls its id from every
// product that referenced it. Products themselves are never deleted.
func (s *catalogService) DeleteCollection(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.collections.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(http.StatusNotFound, "Collection not found", nil)
		}
		return apperrors.New(http.StatusInternalServerError, "Failed to fetch collection", err)
	}

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.collections.Delete(txCtx, id); err != nil {
			return err
		}
		return s.products.PullCollectionFromAll(txCtx, id)
	})
	if err != nil {
		return apperrors.New(http.StatusInternalServerError, "Failed to delete collection", err)
	}

	s.logger.Info("Collection deleted", zap.String("collection_id", id.Hex()))
	return nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]ProductDetail, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch products", err)
	}
	return s.populateProducts(ctx, products)
}

func (s *catalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*ProductDetail, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(http.StatusNotFound, "Product not found", nil)
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch product", err)
	}

	collections, err := s.collections.FindByIDs(ctx, product.Collections)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch product collections", err)
	}
	return &ProductDetail{Product: *product, Collections: collections}, nil
}

// CreateProduct inserts the product and registers it on each target
// collection's product list in the same transaction.
func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	product := newProductFromInput(input)

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.products.Create(txCtx, product); err != nil {
			return err
		}
		for _, collectionID := range product.Collections {
			if err := s.collections.AddProduct(txCtx, collectionID, product.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to create product", err)
	}

	s.logger.Info("Product created", zap.String("product_id", product.ID.Hex()))
	return product, nil
}

// UpdateProduct applies the symmetric difference between the stored and the
// requested collection membership to the affected collections, then updates
// the product, all in one transaction.
func (s *catalogService) UpdateProduct(ctx context.Context, id primitive.ObjectID, input ProductInput) (*ProductDetail, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(http.StatusNotFound, "Product not found", nil)
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch product", err)
	}

	added, removed := diffMembership(existing.Collections, input.Collections)

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, collectionID := range added {
			if err := s.collections.AddProduct(txCtx, collectionID, id); err != nil {
				return err
			}
		}
		for _, collectionID := range removed {
			if err := s.collections.RemoveProduct(txCtx, collectionID, id); err != nil {
				return err
			}
		}
		updates := bson.M{
			"title":       input.Title,
			"description": input.Description,
			"media":       input.Media,
			"category":    input.Category,
			"collections": input.Collections,
			"tags":        input.Tags,
			"sizes":       input.Sizes,
			"colors":      input.Colors,
			"price":       input.Price,
			"expense":     input.Expense,
		}
		return s.products.Update(txCtx, id, updates)
	})
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to update product", err)
	}

	s.logger.Info("Product updated",
		zap.String("product_id", id.Hex()),
		zap.Int("collections_added", len(added)),
		zap.Int("collections_removed", len(removed)),
	)
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes the product and pulls its id from every collection
// that listed it.
func (s *catalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(http.StatusNotFound, "Product not found", nil)
		}
		return apperrors.New(http.StatusInternalServerError, "Failed to fetch product", err)
	}

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.collections.PullProductFromAll(txCtx, id); err != nil {
			return err
		}
		return s.products.Delete(txCtx, id)
	})
	if err != nil {
		return apperrors.New(http.StatusInternalServerError, "Failed to delete product", err)
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.Hex()))
	return nil
}

func (s *catalogService) RelatedProducts(ctx context.Context, id primitive.ObjectID) ([]models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(http.StatusNotFound, "Product not found", nil)
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch product", err)
	}

	related, err := s.products.FindRelated(ctx, product)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch related products", err)
	}
	if len(related) == 0 {
		return nil, apperrors.New(http.StatusNotFound, "No related products found", nil)
	}
	return related, nil
}

func (s *catalogService) populateProducts(ctx context.Context, products []models.Product) ([]ProductDetail, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, p := range products {
		for _, cid := range p.Collections {
			idSet[cid] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	collections, err := s.collections.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch product collections", err)
	}
	byID := make(map[primitive.ObjectID]models.Collection, len(collections))
	for _, c := range collections {
		byID[c.ID] = c
	}

	details := make([]ProductDetail, 0, len(products))
	for _, p := range products {
		populated := make([]models.Collection, 0, len(p.Collections))
		for _, cid := range p.Collections {
			if c, ok := byID[cid]; ok {
				populated = append(populated, c)
			}
		}
		details = append(details, ProductDetail{Product: p, Collections: populated})
	}
	return details, nil
}

func newProductFromInput(input ProductInput) *models.Product {
	return &models.Product{
		Title:       input.Title,
		Description: input.Description,
		Media:       ensureSlice(input.Media),
		Category:    input.Category,
		Collections: ensureIDSlice(input.Collections),
		Tags:        ensureSlice(input.Tags),
		Sizes:       ensureSlice(input.Sizes),
		Colors:      ensureSlice(input.Colors),
		Price:       input.Price,
		Expense:     input.Expense,
	}
}

// diffMembership returns the ids present only in next (added) and only in
// prev (removed).
func diffMembership(prev, next []primitive.ObjectID) (added, removed []primitive.ObjectID) {
	prevSet := make(map[primitive.ObjectID]struct{}, len(prev))
	for _, id := range prev {
		prevSet[id] = struct{}{}
	}
	nextSet := make(map[primitive.ObjectID]struct{}, len(next))
	for _, id := range next {
		nextSet[id] = struct{}{}
	}

	for _, id := range next {
		if _, ok := prevSet[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range prev {
		if _, ok := nextSet[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}

func ensureSlice(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func ensureIDSlice(values []primitive.ObjectID) []primitive.ObjectID {
	if values == nil {
		return []primitive.ObjectID{}
	}
	return values
}
