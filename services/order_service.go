package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "bookrental-admin/errors"
	"bookrental-admin/models"
	"bookrental-admin/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// OrderItemDetail is a line item with its product populated.
type OrderItemDetail struct {
	models.OrderItem
	ProductDetails *models.Product `json:"productDetails,omitempty"`
}

// OrderDetail is an order with line-item products populated.
type OrderDetail struct {
	models.Order
	Products []OrderItemDetail `json:"products"`
}

// UpdateOrderRequest is a partial order update: the overall status, a single
// line item's status, or both.
type UpdateOrderRequest struct {
	OrderStatus   *models.OrderStatus
	ProductID     *primitive.ObjectID
	ProductStatus *models.ItemStatus
}

type OrderService interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id primitive.ObjectID) (*OrderDetail, *models.Customer, error)
	UpdateOrder(ctx context.Context, id primitive.ObjectID, req UpdateOrderRequest) (*OrderDetail, error)
}

type orderService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	logger    *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	logger *zap.Logger,
) OrderService {
	return &orderService{orders: orders, customers: customers, products: products, logger: logger}
}

func (s *orderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch orders", err)
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, id primitive.ObjectID) (*OrderDetail, *models.Customer, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, apperrors.New(http.StatusNotFound, "Order not found", nil)
		}
		return nil, nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch order", err)
	}

	detail, err := s.populate(ctx, order)
	if err != nil {
		return nil, nil, err
	}

	customer, err := s.customers.FindByClerkID(ctx, order.CustomerClerkID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch customer", err)
	}
	return detail, customer, nil
}

// UpdateOrder applies a partial status update. A line item moving to
// "borrowed" with a borrow duration present gets its return date derived as
// now + duration days; no other transition touches the return date.
func (s *orderService) UpdateOrder(ctx context.Context, id primitive.ObjectID, req UpdateOrderRequest) (*OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(http.StatusNotFound, "Order not found", nil)
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch order", err)
	}

	if req.OrderStatus != nil {
		if !req.OrderStatus.Valid() {
			return nil, apperrors.New(http.StatusBadRequest, "Invalid order status", nil)
		}
		order.OrderStatus = *req.OrderStatus
	}

	if req.ProductID != nil && req.ProductStatus != nil {
		if !req.ProductStatus.Valid() {
			return nil, apperrors.New(http.StatusBadRequest, "Invalid product status", nil)
		}

		idx := order.ItemIndex(*req.ProductID)
		if idx == -1 {
			return nil, apperrors.New(http.StatusNotFound, "Product not found in order", nil)
		}

		item := &order.Products[idx]
		item.Status = *req.ProductStatus
		if *req.ProductStatus == models.ItemBorrowed && item.BorrowDuration > 0 {
			returnDate := time.Now().AddDate(0, 0, item.BorrowDuration)
			item.ReturnDate = &returnDate
		}
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to update order", err)
	}

	s.logger.Info("Order updated",
		zap.String("order_id", id.Hex()),
		zap.String("order_status", string(order.OrderStatus)),
	)

	return s.populate(ctx, order)
}

func (s *orderService) populate(ctx context.Context, order *models.Order) (*OrderDetail, error) {
	productIDs := make([]primitive.ObjectID, 0, len(order.Products))
	for _, item := range order.Products {
		if item.Product != nil {
			productIDs = append(productIDs, *item.Product)
		}
	}

	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch order products", err)
	}
	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	detail := &OrderDetail{Order: *order, Products: make([]OrderItemDetail, 0, len(order.Products))}
	for _, item := range order.Products {
		itemDetail := OrderItemDetail{OrderItem: item}
		if item.Product != nil {
			itemDetail.ProductDetails = byID[*item.Product]
		}
		detail.Products = append(detail.Products, itemDetail)
	}
	return detail, nil
}
