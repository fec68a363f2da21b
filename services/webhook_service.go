package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"bookrental-admin/database"
	apperrors "bookrental-admin/errors"
	"bookrental-admin/models"
	"bookrental-admin/repository"

	"github.com/stripe/stripe-go/v80"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// WebhookService reacts to payment-completion events by materializing an
// order and its customer record. Deliveries are at-least-once, so processed
// event ids are recorded first and redeliveries are acknowledged without a
// second write.
type WebhookService interface {
	HandleEvent(ctx context.Context, event stripe.Event) error
}

type webhookService struct {
	stripe    SessionRetriever
	events    IdempotencyStore
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	tx        database.Transactor
	logger    *zap.Logger
}

func NewWebhookService(
	stripeClient SessionRetriever,
	events IdempotencyStore,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	tx database.Transactor,
	logger *zap.Logger,
) WebhookService {
	return &webhookService{
		stripe:    stripeClient,
		events:    events,
		orders:    orders,
		customers: customers,
		tx:        tx,
		logger:    logger,
	}
}

func (s *webhookService) HandleEvent(ctx context.Context, event stripe.Event) error {
	if event.Type != "checkout.session.completed" {
		s.logger.Info("Unhandled webhook event type", zap.String("event_type", string(event.Type)))
		return nil
	}
	if event.Data == nil {
		return apperrors.New(http.StatusBadRequest, "Malformed webhook event payload", nil)
	}

	firstSeen, err := s.events.MarkProcessed(ctx, event.ID)
	if err != nil {
		return apperrors.New(http.StatusInternalServerError, "Failed to record webhook event", err)
	}
	if !firstSeen {
		s.logger.Info("Skipping redelivered webhook event", zap.String("event_id", event.ID))
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		_ = s.events.Release(ctx, event.ID)
		return apperrors.New(http.StatusBadRequest, "Malformed checkout session payload", err)
	}

	// The event payload omits line items; fetch the session with product
	// metadata expanded.
	fullSession, err := s.stripe.RetrieveSession(sess.ID)
	if err != nil {
		_ = s.events.Release(ctx, event.ID)
		return apperrors.New(http.StatusInternalServerError, "Failed to retrieve checkout session", err)
	}

	order, customer := buildOrderFromSession(fullSession)

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.orders.Create(txCtx, order); err != nil {
			return err
		}
		matched, err := s.customers.AppendOrder(txCtx, order.CustomerClerkID, order.ID)
		if err != nil {
			return err
		}
		if !matched {
			customer.Orders = []primitive.ObjectID{order.ID}
			return s.customers.Create(txCtx, customer)
		}
		return nil
	})
	if err != nil {
		_ = s.events.Release(ctx, event.ID)
		return apperrors.New(http.StatusInternalServerError, "Failed to materialize order", err)
	}

	s.logger.Info("Order created from checkout session",
		zap.String("event_id", event.ID),
		zap.String("session_id", fullSession.ID),
		zap.String("order_id", order.ID.Hex()),
		zap.String("clerk_id", order.CustomerClerkID),
	)
	return nil
}

func buildOrderFromSession(sess *stripe.CheckoutSession) (*models.Order, *models.Customer) {
	clerkID := sess.ClientReferenceID
	if clerkID == "" {
		clerkID = "unknown"
	}

	customer := &models.Customer{
		ClerkID: clerkID,
		Name:    "Unknown",
		Email:   "unknown@example.com",
	}
	if sess.CustomerDetails != nil {
		if sess.CustomerDetails.Name != "" {
			customer.Name = sess.CustomerDetails.Name
		}
		if sess.CustomerDetails.Email != "" {
			customer.Email = sess.CustomerDetails.Email
		}
	}

	order := &models.Order{
		CustomerClerkID: clerkID,
		Products:        buildOrderItems(sess),
		ShippingAddress: extractShippingAddress(sess),
		TotalAmount:     float64(sess.AmountTotal) / 100,
		OrderStatus:     models.OrderPending,
	}
	if sess.ShippingCost != nil && sess.ShippingCost.ShippingRate != nil {
		order.ShippingRate = sess.ShippingCost.ShippingRate.ID
	}
	return order, customer
}

func buildOrderItems(sess *stripe.CheckoutSession) []models.OrderItem {
	if sess.LineItems == nil {
		return []models.OrderItem{}
	}

	items := make([]models.OrderItem, 0, len(sess.LineItems.Data))
	for _, lineItem := range sess.LineItems.Data {
		item := models.OrderItem{
			Quantity:       1,
			BorrowDuration: DefaultBorrowDuration,
			Size:           "N/A",
			Color:          "N/A",
			Status:         models.ItemPending,
		}
		if lineItem.Quantity > 0 {
			item.Quantity = int(lineItem.Quantity)
		}

		var metadata map[string]string
		if lineItem.Price != nil && lineItem.Price.Product != nil {
			metadata = lineItem.Price.Product.Metadata
		}
		if productID, err := primitive.ObjectIDFromHex(metadata["productId"]); err == nil {
			item.Product = &productID
		}
		if duration, err := strconv.Atoi(metadata["borrowDuration"]); err == nil && duration > 0 {
			item.BorrowDuration = duration
		}
		if size := metadata["size"]; size != "" {
			item.Size = size
		}
		if color := metadata["color"]; color != "" {
			item.Color = color
		}

		items = append(items, item)
	}
	return items
}

// extractShippingAddress prefers the customer-supplied address and falls
// back to shipping details; an address with every field empty is omitted.
func extractShippingAddress(sess *stripe.CheckoutSession) *models.ShippingAddress {
	var addr *stripe.Address
	if sess.CustomerDetails != nil && sess.CustomerDetails.Address != nil {
		addr = sess.CustomerDetails.Address
	} else if sess.ShippingDetails != nil && sess.ShippingDetails.Address != nil {
		addr = sess.ShippingDetails.Address
	}
	if addr == nil {
		return nil
	}

	shipping := &models.ShippingAddress{
		Street:     addr.Line1,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
	}
	if shipping.Empty() {
		return nil
	}
	return shipping
}
