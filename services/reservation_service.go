package services

import (
	"context"
	"errors"
	"net/http"

	"bookrental-admin/database"
	apperrors "bookrental-admin/errors"
	"bookrental-admin/models"
	"bookrental-admin/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ReservationDetail is a reservation with its product populated.
type ReservationDetail struct {
	models.Reservation
	Product *models.Product `json:"product,omitempty"`
}

// ReconcileResult carries both documents touched by a status reconciliation.
// Order is nil when the reservation has no matching order.
type ReconcileResult struct {
	Reservation *models.Reservation `json:"reservation"`
	Order       *models.Order       `json:"order,omitempty"`
}

type ReservationService interface {
	ListReservations(ctx context.Context) ([]ReservationDetail, error)
	GetReservation(ctx context.Context, id primitive.ObjectID) (*ReservationDetail, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReservationStatus) (*ReconcileResult, error)
}

type reservationService struct {
	reservations repository.ReservationRepository
	orders       repository.OrderRepository
	products     repository.ProductRepository
	tx           database.Transactor
	logger       *zap.Logger
}

func NewReservationService(
	reservations repository.ReservationRepository,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	tx database.Transactor,
	logger *zap.Logger,
) ReservationService {
	return &reservationService{
		reservations: reservations,
		orders:       orders,
		products:     products,
		tx:           tx,
		logger:       logger,
	}
}

func (s *reservationService) ListReservations(ctx context.Context) ([]ReservationDetail, error) {
	reservations, err := s.reservations.FindAll(ctx)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch reservations", err)
	}

	productIDs := make([]primitive.ObjectID, 0, len(reservations))
	for _, r := range reservations {
		productIDs = append(productIDs, r.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch reservation products", err)
	}
	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	details := make([]ReservationDetail, 0, len(reservations))
	for _, r := range reservations {
		details = append(details, ReservationDetail{Reservation: r, Product: byID[r.ProductID]})
	}
	return details, nil
}

func (s *reservationService) GetReservation(ctx context.Context, id primitive.ObjectID) (*ReservationDetail, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(http.StatusNotFound, "Reservation not found", nil)
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch reservation", err)
	}

	detail := &ReservationDetail{Reservation: *reservation}
	if product, err := s.products.FindByID(ctx, reservation.ProductID); err == nil {
		detail.Product = product
	}
	return detail, nil
}

// UpdateStatus persists the new reservation status and propagates it onto
// the most recent order holding a line item for the reserved product, per
// the status mapping table. A reservation without a matching order still
// updates successfully.
func (s *reservationService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReservationStatus) (*ReconcileResult, error) {
	if !status.Valid() {
		return nil, apperrors.New(http.StatusBadRequest, "Invalid reservation status", nil)
	}

	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(http.StatusNotFound, "Reservation not found", nil)
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch reservation", err)
	}

	var order *models.Order
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.reservations.UpdateStatus(txCtx, id, status); err != nil {
			return err
		}

		found, err := s.orders.FindLatestByCustomerAndProduct(txCtx, reservation.UserID, reservation.ProductID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil
			}
			return err
		}

		orderStatus, itemStatus := models.MapReservationStatus(status)
		found.OrderStatus = orderStatus
		if idx := found.ItemIndex(reservation.ProductID); idx != -1 {
			found.Products[idx].Status = itemStatus
		}
		if err := s.orders.Save(txCtx, found); err != nil {
			return err
		}
		order = found
		return nil
	})
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to update reservation", err)
	}

	reservation.Status = status
	if order != nil {
		s.logger.Info("Reconciled reservation with order",
			zap.String("reservation_id", id.Hex()),
			zap.String("order_id", order.ID.Hex()),
			zap.String("status", string(status)),
		)
	} else {
		s.logger.Info("Reservation updated without matching order",
			zap.String("reservation_id", id.Hex()),
			zap.String("status", string(status)),
		)
	}

	return &ReconcileResult{Reservation: reservation, Order: order}, nil
}
