package models

// OrderStatus is the overall lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCancelled OrderStatus = "cancelled"
	OrderCompleted OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderCancelled, OrderCompleted:
		return true
	}
	return false
}

// ItemStatus is the borrow lifecycle state of a single order line item.
type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemConfirmed ItemStatus = "confirmed"
	ItemBorrowed  ItemStatus = "borrowed"
	ItemReturned  ItemStatus = "returned"
	ItemOverdue   ItemStatus = "overdue"
	ItemCancelled ItemStatus = "cancelled"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemPending, ItemConfirmed, ItemBorrowed, ItemReturned, ItemOverdue, ItemCancelled:
		return true
	}
	return false
}

// ReservationStatus is the lifecycle state of a book reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationApproved  ReservationStatus = "approved"
	ReservationRejected  ReservationStatus = "rejected"
	ReservationCompleted ReservationStatus = "completed"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationApproved, ReservationRejected, ReservationCompleted:
		return true
	}
	return false
}

// MapReservationStatus derives the order and line-item statuses that a
// reservation status change must propagate onto the matching order.
func MapReservationStatus(s ReservationStatus) (OrderStatus, ItemStatus) {
	switch s {
	case ReservationApproved:
		return OrderConfirmed, ItemConfirmed
	case ReservationRejected:
		return OrderCancelled, ItemCancelled
	case ReservationCompleted:
		return OrderCompleted, ItemReturned
	default:
		return OrderPending, ItemPending
	}
}
