package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/domain/events"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"
	"github.com/Mathmagicians/theslope/internal/pkg/timeutil"

	"github.com/google/uuid"
)

// billingService implements the BillingService interface
type billingService struct {
	repos    Repositories
	uow      UnitOfWork
	encoder  billing.InvoiceEncoder
	clock    timeutil.Clock
	notifier notifier
	logger   logger.Logger
}

// NewBillingService creates a new billingService instance
func NewBillingService(
	repos Repositories,
	uow UnitOfWork,
	encoder billing.InvoiceEncoder,
	publisher events.Publisher,
	clock timeutil.Clock,
	logger logger.Logger,
) (billing.BillingService, error) {
	if err := repos.validate(); err != nil {
		return nil, err
	}
	if uow == nil || encoder == nil || clock == nil {
		return nil, fmt.Errorf("%w: billing service", ErrMissingDependency)
	}
	return &billingService{
		repos:    repos,
		uow:      uow,
		encoder:  encoder,
		clock:    clock,
		notifier: notifier{publisher: publisher, logger: logger},
		logger:   logger,
	}, nil
}

// CloseOrders consumes each dinner whose start has passed. Its booked and
// released orders become CLOSED and billable; each dinner is closed in its
// own transaction.
func (s *billingService) CloseOrders(ctx context.Context) (int, error) {
	now := s.clock.Now()
	today := calendar.DateOf(now, s.clock.Location())

	pending, err := s.repos.DinnerEvents.List(ctx, &dinner.DinnerEventQuery{
		To:     today,
		States: []string{dinner.StateScheduled, dinner.StateAnnounced},
	})
	if err != nil {
		return 0, err
	}

	seasons := newSeasonLookup(s.repos.Seasons)
	total := 0
	for _, event := range pending {
		sn, err := seasons.get(ctx, event.SeasonID)
		if err != nil {
			return total, err
		}
		if now.Before(sn.DinnerStart(event.Date, s.clock.Location())) {
			continue
		}

		closed := 0
		err = s.uow.Do(ctx, func(ctx context.Context) error {
			event.State = dinner.StateConsumed
			if err := s.repos.DinnerEvents.UpdateByID(ctx, event); err != nil {
				return err
			}
			orders, err := s.repos.Orders.List(ctx, &booking.OrderQuery{
				DinnerEventIDs: []string{event.ID},
				States:         []string{booking.StateBooked, booking.StateReleased},
			})
			if err != nil {
				return err
			}
			for _, order := range orders {
				closedAt := now
				order.State = booking.StateClosed
				order.ClosedAt = &closedAt
				order.UpdatedAt = now
				if err := s.repos.Orders.UpdateByID(ctx, order); err != nil {
					return err
				}
				if err := appendHistory(ctx, s.repos.OrderHistory, order, booking.ActionSystemClosed, booking.SystemUserID, now, nil); err != nil {
					return err
				}
			}
			closed = len(orders)
			return nil
		})
		if err != nil {
			return total, fmt.Errorf("failed to close dinner %s: %w", event.ID, err)
		}

		total += closed
		s.logger.Infof("Dinner %s on %s consumed, %d orders closed", event.ID, event.Date.Format(calendar.DateLayout), closed)
		s.notifier.notify(ctx, events.TypeOrdersClosed, event.ID, now, map[string]interface{}{
			"date":   event.Date.Format(calendar.DateLayout),
			"orders": closed,
		})
	}
	return total, nil
}

// CreateTransactions charges every closed order that has no transaction yet.
// The transaction keeps a snapshot of the order so invoices survive later edits.
func (s *billingService) CreateTransactions(ctx context.Context) (int, error) {
	closed, err := s.repos.Orders.List(ctx, &booking.OrderQuery{States: []string{booking.StateClosed}})
	if err != nil {
		return 0, err
	}
	if len(closed) == 0 {
		return 0, nil
	}

	ids := make([]string, len(closed))
	for i, order := range closed {
		ids[i] = order.ID
	}
	charged, err := s.repos.Transactions.OrderIDsWithTransactions(ctx, ids)
	if err != nil {
		return 0, err
	}

	var pending []*booking.Order
	eventIDs := make(map[string]bool)
	inhabitantIDs := make(map[string]bool)
	for _, order := range closed {
		if charged[order.ID] {
			continue
		}
		pending = append(pending, order)
		eventIDs[order.DinnerEventID] = true
		if order.InhabitantID != nil {
			inhabitantIDs[*order.InhabitantID] = true
		}
	}
	if len(pending) == 0 {
		return 0, nil
	}

	dinners, err := s.repos.DinnerEvents.List(ctx, &dinner.DinnerEventQuery{IDs: keys(eventIDs)})
	if err != nil {
		return 0, err
	}
	dates := make(map[string]time.Time, len(dinners))
	for _, event := range dinners {
		dates[event.ID] = event.Date
	}
	inhabitants, err := s.repos.Inhabitants.ListByIDs(ctx, keys(inhabitantIDs))
	if err != nil {
		return 0, err
	}
	names := make(map[string]string, len(inhabitants))
	for _, inhabitant := range inhabitants {
		names[inhabitant.ID] = inhabitant.FullName()
	}

	now := s.clock.Now()
	created := 0
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		for _, order := range pending {
			date, ok := dates[order.DinnerEventID]
			if !ok {
				s.logger.Warnf("Closed order %s refers to unknown dinner %s, skipped", order.ID, order.DinnerEventID)
				continue
			}
			if err := s.repos.Transactions.Create(ctx, newTransaction(order, date, names, now)); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Infof("Created %d transactions", created)
	return created, nil
}

func newTransaction(order *booking.Order, date time.Time, names map[string]string, now time.Time) *billing.Transaction {
	orderID := order.ID
	snapshot := billing.OrderSnapshot{
		OrderID:       order.ID,
		DinnerEventID: order.DinnerEventID,
		DinnerDate:    date.Format(calendar.DateLayout),
		TicketType:    string(order.TicketType),
		DinnerMode:    string(order.DinnerMode),
		IsGuestTicket: order.IsGuestTicket,
		WasReleased:   order.ReleasedAt != nil,
	}
	if order.InhabitantID != nil {
		snapshot.InhabitantID = *order.InhabitantID
		snapshot.InhabitantName = names[*order.InhabitantID]
	}
	return &billing.Transaction{
		ID:            uuid.NewString(),
		OrderID:       &orderID,
		HouseholdID:   order.HouseholdID,
		Amount:        order.PriceAtBooking,
		DinnerDate:    date,
		OrderSnapshot: snapshot,
		CreatedAt:     now.UTC(),
	}
}

// GenerateBillingPeriod invoices every unbilled transaction with a dinner on
// or before cutoff, one invoice per household. Transactions missed by earlier
// periods are picked up too. A period is generated once; later calls return it.
func (s *billingService) GenerateBillingPeriod(ctx context.Context, cutoff time.Time) (*billing.BillingPeriodSummary, bool, error) {
	period := billing.PeriodFor(cutoff)

	existing, err := s.repos.BillingPeriods.GetByPeriod(ctx, period.Key)
	if err == nil {
		return existing, false, nil
	}
	if !errs.IsKind(err, errs.KindNotFound) {
		return nil, false, err
	}

	now := s.clock.Now()
	summary := &billing.BillingPeriodSummary{
		ID:            uuid.NewString(),
		BillingPeriod: period.Key,
		PeriodStart:   period.Start,
		PeriodEnd:     period.End,
		PaymentDate:   period.PaymentDate,
		CreatedAt:     now.UTC(),
		Invoices:      []*billing.Invoice{},
	}

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		unbilled, err := s.repos.Transactions.ListUnbilled(ctx, period.End)
		if err != nil {
			return err
		}

		byHousehold := make(map[string][]*billing.Transaction)
		for _, transaction := range unbilled {
			byHousehold[transaction.HouseholdID] = append(byHousehold[transaction.HouseholdID], transaction)
		}

		assignments := make(map[string][]string)
		for householdID, transactions := range byHousehold {
			h, err := s.repos.Households.GetByID(ctx, householdID)
			if err != nil {
				return fmt.Errorf("failed to invoice household %s: %w", householdID, err)
			}
			invoice := &billing.Invoice{
				ID:              uuid.NewString(),
				BillingPeriodID: summary.ID,
				HouseholdID:     householdID,
				PbsID:           h.PbsID,
				BillingPeriod:   period.Key,
				CutoffDate:      period.End,
				PaymentDate:     period.PaymentDate,
			}
			ids := make([]string, len(transactions))
			for i, transaction := range transactions {
				invoice.Amount += transaction.Amount
				ids[i] = transaction.ID
			}
			invoice.TransactionCount = len(transactions)
			assignments[invoice.ID] = ids

			summary.Invoices = append(summary.Invoices, invoice)
			summary.TotalAmount += invoice.Amount
			summary.TicketCount += invoice.TransactionCount
		}
		sort.Slice(summary.Invoices, func(i, j int) bool { return summary.Invoices[i].PbsID < summary.Invoices[j].PbsID })
		summary.HouseholdCount = len(summary.Invoices)

		if err := s.repos.BillingPeriods.Create(ctx, summary); err != nil {
			return err
		}
		for invoiceID, ids := range assignments {
			if err := s.repos.Transactions.AssignInvoice(ctx, ids, invoiceID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	s.logger.Infof("Billing period %s generated: %d invoices, %d tickets, %s kr",
		period.Key, summary.HouseholdCount, summary.TicketCount, billing.Kroner(summary.TotalAmount))
	s.notifier.notify(ctx, events.TypeBillingPeriodGenerated, summary.ID, now, map[string]interface{}{
		"billing_period": period.Key,
		"total_amount":   summary.TotalAmount,
		"households":     summary.HouseholdCount,
	})
	return summary, true, nil
}

func (s *billingService) ListPeriods(ctx context.Context) ([]*billing.BillingPeriodSummary, error) {
	return s.repos.BillingPeriods.List(ctx)
}

func (s *billingService) GetPeriod(ctx context.Context, periodID string) (*billing.BillingPeriodSummary, error) {
	return s.repos.BillingPeriods.GetByID(ctx, periodID)
}

// ExportInvoices writes the period's invoices in the payment service format.
func (s *billingService) ExportInvoices(ctx context.Context, periodID string, w io.Writer) error {
	summary, err := s.repos.BillingPeriods.GetByID(ctx, periodID)
	if err != nil {
		return err
	}

	lines := make([]billing.InvoiceLine, len(summary.Invoices))
	for i, invoice := range summary.Invoices {
		line := billing.InvoiceLine{
			PbsID:   invoice.PbsID,
			Amount:  invoice.Amount,
			Tickets: invoice.TransactionCount,
		}
		h, err := s.repos.Households.GetByID(ctx, invoice.HouseholdID)
		switch {
		case err == nil:
			line.HouseholdName = h.Name
			line.Address = h.Address
		case !errs.IsKind(err, errs.KindNotFound):
			return err
		}
		lines[i] = line
	}
	return s.encoder.Encode(w, summary, lines)
}

func (s *billingService) ListHouseholdInvoices(ctx context.Context, householdID string) ([]*billing.Invoice, error) {
	if _, err := s.repos.Households.GetByID(ctx, householdID); err != nil {
		return nil, err
	}
	return s.repos.BillingPeriods.ListInvoicesByHousehold(ctx, householdID)
}

func (s *billingService) ListHouseholdTransactions(ctx context.Context, householdID string) ([]*billing.Transaction, error) {
	if _, err := s.repos.Households.GetByID(ctx, householdID); err != nil {
		return nil, err
	}
	return s.repos.Transactions.ListByHousehold(ctx, householdID)
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
