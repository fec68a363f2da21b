package services

import (
	"context"
	"net/http"
	"strconv"

	apperrors "bookrental-admin/errors"
	"bookrental-admin/models"

	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// DefaultBorrowDuration is the borrow period (days) applied when the cart
// does not choose one.
const DefaultBorrowDuration = 7

// CheckoutItemSnapshot is the client-supplied product snapshot inside a cart
// item. Price tolerates both plain numbers and the decimal-wrapped shape.
type CheckoutItemSnapshot struct {
	ID    string       `json:"_id"`
	Title string       `json:"title"`
	Price models.Price `json:"price"`
}

type CheckoutCartItem struct {
	Item           CheckoutItemSnapshot `json:"item"`
	Quantity       int64                `json:"quantity"`
	BorrowDuration int                  `json:"borrowDuration"`
	Size           string               `json:"size,omitempty"`
	Color          string               `json:"color,omitempty"`
}

type CheckoutCustomer struct {
	ClerkID string `json:"clerkId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

type CheckoutRequest struct {
	CartItems []CheckoutCartItem `json:"cartItems"`
	Customer  CheckoutCustomer   `json:"customer"`
}

type CheckoutService interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (*stripe.CheckoutSession, error)
}

type checkoutService struct {
	stripe           SessionCreator
	currency         string
	storeURL         string
	shippingRates    []string
	allowedCountries []string
	logger           *zap.Logger
}

func NewCheckoutService(
	stripeClient SessionCreator,
	currency, storeURL string,
	shippingRates, allowedCountries []string,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{
		stripe:           stripeClient,
		currency:         currency,
		storeURL:         storeURL,
		shippingRates:    shippingRates,
		allowedCountries: allowedCountries,
		logger:           logger,
	}
}

func (s *checkoutService) CreateSession(ctx context.Context, req CheckoutRequest) (*stripe.CheckoutSession, error) {
	if len(req.CartItems) == 0 || req.Customer.ClerkID == "" {
		return nil, apperrors.New(http.StatusBadRequest, "Not enough data to checkout", nil)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          BuildLineItems(req.CartItems, s.currency),
		ClientReferenceID:  stripe.String(req.Customer.ClerkID),
		SuccessURL:         stripe.String(s.storeURL + "/payment_success"),
		CancelURL:          stripe.String(s.storeURL + "/cart"),
	}
	if req.Customer.Email != "" {
		params.CustomerEmail = stripe.String(req.Customer.Email)
	}
	if len(s.allowedCountries) > 0 {
		params.ShippingAddressCollection = &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(s.allowedCountries),
		}
	}
	for _, rate := range s.shippingRates {
		params.ShippingOptions = append(params.ShippingOptions, &stripe.CheckoutSessionShippingOptionParams{
			ShippingRate: stripe.String(rate),
		})
	}

	session, err := s.stripe.CreateCheckoutSession(params)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to create checkout session", err)
	}

	s.logger.Info("Checkout session created",
		zap.String("session_id", session.ID),
		zap.String("clerk_id", req.Customer.ClerkID),
		zap.Int("items", len(req.CartItems)),
	)
	return session, nil
}

// BuildLineItems maps cart items to the provider's line-item format. The
// unit amount is the normalized price in minor currency units, and product
// metadata carries the originating product id plus borrow metadata so the
// webhook handler can rebuild an order from the session alone.
func BuildLineItems(cartItems []CheckoutCartItem, currency string) []*stripe.CheckoutSessionLineItemParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(cartItems))
	for _, cartItem := range cartItems {
		name := cartItem.Item.Title
		if name == "" {
			name = "No name"
		}
		productID := cartItem.Item.ID
		if productID == "" {
			productID = "unknown"
		}
		duration := cartItem.BorrowDuration
		if duration <= 0 {
			duration = DefaultBorrowDuration
		}
		quantity := cartItem.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		metadata := map[string]string{
			"productId":      productID,
			"borrowDuration": strconv.Itoa(duration),
		}
		if cartItem.Size != "" {
			metadata["size"] = cartItem.Size
		}
		if cartItem.Color != "" {
			metadata["color"] = cartItem.Color
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:     stripe.String(name),
					Metadata: metadata,
				},
				UnitAmount: stripe.Int64(cartItem.Item.Price.MinorUnits()),
			},
			Quantity: stripe.Int64(quantity),
		})
	}
	return lineItems
}
