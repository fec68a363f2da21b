package services

import (
	"context"
	"sort"
	"time"

	"bookrental-admin/models"

	"github.com/stripe/stripe-go/v80"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// passthroughTx runs the callback without a real session; unit tests only
// care about the writes happening, not about atomicity.
type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memReservationRepo struct {
	reservations map[primitive.ObjectID]*models.Reservation
}

func newMemReservationRepo() *memReservationRepo {
	return &memReservationRepo{reservations: make(map[primitive.ObjectID]*models.Reservation)}
}

func (r *memReservationRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	if reservation, ok := r.reservations[id]; ok {
		copied := *reservation
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memReservationRepo) FindAll(_ context.Context) ([]models.Reservation, error) {
	out := make([]models.Reservation, 0, len(r.reservations))
	for _, reservation := range r.reservations {
		out = append(out, *reservation)
	}
	return out, nil
}

func (r *memReservationRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ReservationStatus) error {
	if reservation, ok := r.reservations[id]; ok {
		reservation.Status = status
	}
	return nil
}

type memOrderRepo struct {
	orders []*models.Order
}

func (r *memOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	for _, order := range r.orders {
		if order.ID == id {
			copied := *order
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memOrderRepo) FindAll(_ context.Context) ([]models.Order, error) {
	out := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, *order)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memOrderRepo) FindLatestByCustomerAndProduct(_ context.Context, clerkID string, productID primitive.ObjectID) (*models.Order, error) {
	var latest *models.Order
	for _, order := range r.orders {
		if order.CustomerClerkID != clerkID || order.ItemIndex(productID) == -1 {
			continue
		}
		if latest == nil || order.CreatedAt.After(latest.CreatedAt) {
			latest = order
		}
	}
	if latest == nil {
		return nil, mongo.ErrNoDocuments
	}
	copied := *latest
	return &copied, nil
}

func (r *memOrderRepo) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now().UTC()
	order.UpdatedAt = order.CreatedAt
	copied := *order
	r.orders = append(r.orders, &copied)
	return nil
}

func (r *memOrderRepo) Save(_ context.Context, order *models.Order) error {
	for i, existing := range r.orders {
		if existing.ID == order.ID {
			copied := *order
			copied.UpdatedAt = time.Now().UTC()
			r.orders[i] = &copied
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type memProductRepo struct {
	products map[primitive.ObjectID]*models.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
}

func (r *memProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if product, ok := r.products[id]; ok {
		copied := *product
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memProductRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	out := []models.Product{}
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindAll(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(r.products))
	for _, product := range r.products {
		out = append(out, *product)
	}
	return out, nil
}

func (r *memProductRepo) FindRelated(_ context.Context, product *models.Product) ([]models.Product, error) {
	inCollections := make(map[primitive.ObjectID]struct{}, len(product.Collections))
	for _, id := range product.Collections {
		inCollections[id] = struct{}{}
	}

	out := []models.Product{}
	for _, candidate := range r.products {
		if candidate.ID == product.ID {
			continue
		}
		shared := candidate.Category == product.Category
		for _, id := range candidate.Collections {
			if _, ok := inCollections[id]; ok {
				shared = true
				break
			}
		}
		if shared {
			out = append(out, *candidate)
		}
	}
	return out, nil
}

func (r *memProductRepo) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = product.CreatedAt
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *memProductRepo) Update(_ context.Context, id primitive.ObjectID, updates bson.M) error {
	product, ok := r.products[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if title, ok := updates["title"].(string); ok {
		product.Title = title
	}
	if category, ok := updates["category"].(string); ok {
		product.Category = category
	}
	if collections, ok := updates["collections"].([]primitive.ObjectID); ok {
		product.Collections = collections
	}
	if price, ok := updates["price"].(models.Price); ok {
		product.Price = price
	}
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) PullCollectionFromAll(_ context.Context, collectionID primitive.ObjectID) error {
	for _, product := range r.products {
		kept := product.Collections[:0]
		for _, id := range product.Collections {
			if id != collectionID {
				kept = append(kept, id)
			}
		}
		product.Collections = kept
	}
	return nil
}

type memCollectionRepo struct {
	collections map[primitive.ObjectID]*models.Collection
}

func newMemCollectionRepo() *memCollectionRepo {
	return &memCollectionRepo{collections: make(map[primitive.ObjectID]*models.Collection)}
}

func (r *memCollectionRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Collection, error) {
	if collection, ok := r.collections[id]; ok {
		copied := *collection
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memCollectionRepo) FindByTitle(_ context.Context, title string) (*models.Collection, error) {
	for _, collection := range r.collections {
		if collection.Title == title {
			copied := *collection
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memCollectionRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Collection, error) {
	out := []models.Collection{}
	for _, id := range ids {
		if collection, ok := r.collections[id]; ok {
			out = append(out, *collection)
		}
	}
	return out, nil
}

func (r *memCollectionRepo) FindAll(_ context.Context) ([]models.Collection, error) {
	out := make([]models.Collection, 0, len(r.collections))
	for _, collection := range r.collections {
		out = append(out, *collection)
	}
	return out, nil
}

func (r *memCollectionRepo) Create(_ context.Context, collection *models.Collection) error {
	collection.ID = primitive.NewObjectID()
	collection.CreatedAt = time.Now().UTC()
	collection.UpdatedAt = collection.CreatedAt
	if collection.Products == nil {
		collection.Products = []primitive.ObjectID{}
	}
	copied := *collection
	r.collections[collection.ID] = &copied
	return nil
}

func (r *memCollectionRepo) Update(_ context.Context, id primitive.ObjectID, updates bson.M) error {
	collection, ok := r.collections[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if title, ok := updates["title"].(string); ok {
		collection.Title = title
	}
	if image, ok := updates["image"].(string); ok {
		collection.Image = image
	}
	return nil
}

func (r *memCollectionRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.collections, id)
	return nil
}

func (r *memCollectionRepo) AddProduct(_ context.Context, collectionID, productID primitive.ObjectID) error {
	collection, ok := r.collections[collectionID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for _, id := range collection.Products {
		if id == productID {
			return nil
		}
	}
	collection.Products = append(collection.Products, productID)
	return nil
}

func (r *memCollectionRepo) RemoveProduct(_ context.Context, collectionID, productID primitive.ObjectID) error {
	collection, ok := r.collections[collectionID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	kept := collection.Products[:0]
	for _, id := range collection.Products {
		if id != productID {
			kept = append(kept, id)
		}
	}
	collection.Products = kept
	return nil
}

func (r *memCollectionRepo) PullProductFromAll(_ context.Context, productID primitive.ObjectID) error {
	for _, collection := range r.collections {
		kept := collection.Products[:0]
		for _, id := range collection.Products {
			if id != productID {
				kept = append(kept, id)
			}
		}
		collection.Products = kept
	}
	return nil
}

type memCustomerRepo struct {
	customers map[string]*models.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[string]*models.Customer)}
}

func (r *memCustomerRepo) FindByClerkID(_ context.Context, clerkID string) (*models.Customer, error) {
	if customer, ok := r.customers[clerkID]; ok {
		copied := *customer
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memCustomerRepo) Create(_ context.Context, customer *models.Customer) error {
	customer.ID = primitive.NewObjectID()
	customer.CreatedAt = time.Now().UTC()
	customer.UpdatedAt = customer.CreatedAt
	copied := *customer
	r.customers[customer.ClerkID] = &copied
	return nil
}

func (r *memCustomerRepo) AppendOrder(_ context.Context, clerkID string, orderID primitive.ObjectID) (bool, error) {
	customer, ok := r.customers[clerkID]
	if !ok {
		return false, nil
	}
	customer.Orders = append(customer.Orders, orderID)
	return true, nil
}

// memEventStore is an in-memory IdempotencyStore.
type memEventStore struct {
	seen map[string]bool
}

func newMemEventStore() *memEventStore {
	return &memEventStore{seen: make(map[string]bool)}
}

func (s *memEventStore) MarkProcessed(_ context.Context, eventID string) (bool, error) {
	if s.seen[eventID] {
		return false, nil
	}
	s.seen[eventID] = true
	return true, nil
}

func (s *memEventStore) Release(_ context.Context, eventID string) error {
	delete(s.seen, eventID)
	return nil
}

type fakeSessionCreator struct {
	createFn func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func (f *fakeSessionCreator) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return f.createFn(params)
}

type fakeSessionRetriever struct {
	retrieveFn func(id string) (*stripe.CheckoutSession, error)
}

func (f *fakeSessionRetriever) RetrieveSession(id string) (*stripe.CheckoutSession, error) {
	return f.retrieveFn(id)
}
