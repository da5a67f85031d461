package booking

import (
	"context"

	"github.com/Mathmagicians/theslope/internal/domain/dinner"
)

// BookingService defines the ticket operations households perform.
type BookingService interface {
	// Book creates tickets for a dinner. After the cancellation deadline a
	// ticket can only be obtained by claiming a released one of the same type.
	Book(ctx context.Context, userID, dinnerEventID string, request *BookingRequest) ([]*Order, error)

	// Cancel cancels a booked ticket in time, or releases it after the deadline.
	Cancel(ctx context.Context, userID, orderID string) (*Order, error)

	// ChangeDinnerMode switches a booked ticket between dine-in, late and takeaway.
	ChangeDinnerMode(ctx context.Context, userID, orderID string, mode dinner.Mode) (*Order, error)

	GetByID(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context, query *OrderQuery) ([]*Order, error)
	History(ctx context.Context, orderID string) ([]*OrderHistory, error)
}

// ScaffoldService reconciles orders with household dinner preferences.
type ScaffoldService interface {
	// ScaffoldHousehold reconciles one household against the active season's remaining dinners.
	ScaffoldHousehold(ctx context.Context, householdID string) (*ScaffoldResult, error)

	// ScaffoldAll reconciles every household. Without an active season it does nothing.
	ScaffoldAll(ctx context.Context) ([]*ScaffoldResult, error)
}

// OrderRepository defines the interface for Order-related operations
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context, query *OrderQuery) ([]*Order, error)
	UpdateByID(ctx context.Context, order *Order) error
	// DeleteByID removes the order and detaches its history rows
	DeleteByID(ctx context.Context, orderID string) error
}

// OrderHistoryRepository defines the interface for the order audit trail
type OrderHistoryRepository interface {
	Append(ctx context.Context, entry *OrderHistory) error
	ListByOrder(ctx context.Context, orderID string) ([]*OrderHistory, error)
}
