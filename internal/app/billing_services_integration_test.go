//go:build integration
// +build integration

package app

import (
	"bytes"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingService_Pipeline(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	h, _ := ts.CreateHousehold(t, 1001)
	s := ts.CreateActiveSeason(t, seasonStart, seasonEnd)
	march17 := ts.EventOn(t, s.ID, calendar.Date(2025, time.March, 17))
	order := orderOn(t, ts, h.ID, march17.ID)

	t.Run("nothing closes before the dinner starts", func(t *testing.T) {
		ts.Clock.Set(ts.At(2025, time.March, 17, 17, 59))
		closed, err := ts.BillingService.CloseOrders(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, closed)
	})

	t.Run("close orders", func(t *testing.T) {
		ts.Clock.Set(ts.At(2025, time.March, 17, 18, 0))
		closed, err := ts.BillingService.CloseOrders(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, closed)

		reloaded, err := ts.BookingService.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StateClosed, reloaded.State)
		require.NotNil(t, reloaded.ClosedAt)

		event, err := ts.DinnerEventService.GetByID(ctx, march17.ID)
		require.NoError(t, err)
		assert.Equal(t, dinner.StateConsumed, event.State)

		again, err := ts.BillingService.CloseOrders(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, again)
		assert.NotEmpty(t, ts.Publisher.OfType(events.TypeOrdersClosed))
	})

	t.Run("closed orders can no longer change", func(t *testing.T) {
		_, err := ts.BookingService.Cancel(ctx, "user-1", order.ID)
		assert.True(t, errs.IsKind(err, errs.KindConflict))
	})

	t.Run("one transaction per closed order", func(t *testing.T) {
		created, err := ts.BillingService.CreateTransactions(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, created)

		again, err := ts.BillingService.CreateTransactions(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, again)

		transactions, err := ts.BillingService.ListHouseholdTransactions(ctx, h.ID)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, 4000, transactions[0].Amount)
		assert.Equal(t, "2025-03-17", transactions[0].OrderSnapshot.DinnerDate)
		assert.Equal(t, order.ID, transactions[0].OrderSnapshot.OrderID)
		assert.Nil(t, transactions[0].InvoiceID)
	})

	var periodID string
	t.Run("generate billing period", func(t *testing.T) {
		summary, created, err := ts.BillingService.GenerateBillingPeriod(ctx, calendar.Date(2025, time.March, 17))
		require.NoError(t, err)
		assert.True(t, created)
		periodID = summary.ID

		assert.Equal(t, "2025-03", summary.BillingPeriod)
		assert.True(t, calendar.Date(2025, time.February, 18).Equal(summary.PeriodStart))
		assert.True(t, calendar.Date(2025, time.April, 1).Equal(summary.PaymentDate))
		assert.Equal(t, 4000, summary.TotalAmount)
		assert.Equal(t, 1, summary.HouseholdCount)
		assert.Equal(t, 1, summary.TicketCount)
		require.Len(t, summary.Invoices, 1)
		assert.Equal(t, h.PbsID, summary.Invoices[0].PbsID)

		transactions, err := ts.BillingService.ListHouseholdTransactions(ctx, h.ID)
		require.NoError(t, err)
		require.NotNil(t, transactions[0].InvoiceID)
		assert.Equal(t, summary.Invoices[0].ID, *transactions[0].InvoiceID)
		assert.Len(t, ts.Publisher.OfType(events.TypeBillingPeriodGenerated), 1)
	})

	t.Run("a period is generated once", func(t *testing.T) {
		summary, created, err := ts.BillingService.GenerateBillingPeriod(ctx, calendar.Date(2025, time.March, 17))
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, periodID, summary.ID)

		periods, err := ts.BillingService.ListPeriods(ctx)
		require.NoError(t, err)
		assert.Len(t, periods, 1)
	})

	t.Run("export invoices", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ts.BillingService.ExportInvoices(ctx, periodID, &buf))
		assert.Contains(t, buf.String(), strconv.Itoa(h.PbsID))
		assert.Contains(t, buf.String(), h.Name)
		assert.Contains(t, buf.String(), "40.00")

		invoices, err := ts.BillingService.ListHouseholdInvoices(ctx, h.ID)
		require.NoError(t, err)
		assert.Len(t, invoices, 1)
	})

	t.Run("household holding tickets can not be deleted", func(t *testing.T) {
		err := ts.HouseholdService.DeleteByID(ctx, h.ID)
		assert.True(t, errs.IsKind(err, errs.KindConflict), "the household still holds future tickets")
	})
}

func TestBillingService_ReleasedTicketIsBilledUnlessClaimed(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	first, _ := ts.CreateHousehold(t, 1001)
	second, _ := ts.CreateHousehold(t, 1002)
	s := ts.CreateActiveSeason(t, seasonStart, seasonEnd)
	march17 := ts.EventOn(t, s.ID, calendar.Date(2025, time.March, 17))

	ts.Clock.Set(ts.At(2025, time.March, 10, 12, 0))
	_, err := ts.BookingService.Cancel(ctx, "user-1", orderOn(t, ts, first.ID, march17.ID).ID)
	require.NoError(t, err)
	_, err = ts.BookingService.Cancel(ctx, "user-2", orderOn(t, ts, second.ID, march17.ID).ID)
	require.NoError(t, err)

	ts.Clock.Set(ts.At(2025, time.March, 18, 6, 0))
	closed, err := ts.BillingService.CloseOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, closed)
	created, err := ts.BillingService.CreateTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	transactions, err := ts.BillingService.ListHouseholdTransactions(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.True(t, transactions[0].OrderSnapshot.WasReleased)

	report, err := ts.DinnerEventService.ChefReport(ctx, march17.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalTickets)
	assert.Equal(t, 2, report.ReleasedTickets)
}

func TestMaintenanceService_RunDaily(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	h, _ := ts.CreateHousehold(t, 1001)
	ts.CreateActiveSeason(t, seasonStart, seasonEnd)

	t.Run("before the cutoff day no period is generated", func(t *testing.T) {
		ts.Clock.Set(ts.At(2025, time.March, 11, 3, 0))
		report, err := ts.MaintenanceService.RunDaily(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, report.ClosedOrders)
		assert.Equal(t, 1, report.ScaffoldedHouseholds)
		assert.Equal(t, 0, report.ScaffoldChanges)
		assert.Empty(t, report.BillingPeriod)
	})

	t.Run("after the cutoff day the month is billed", func(t *testing.T) {
		ts.Clock.Set(ts.At(2025, time.March, 18, 3, 0))
		report, err := ts.MaintenanceService.RunDaily(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.ClosedOrders)
		assert.Equal(t, 1, report.CreatedTransactions)
		assert.Equal(t, "2025-03", report.BillingPeriod)
		assert.True(t, report.BillingPeriodCreated)
	})

	t.Run("running twice is harmless", func(t *testing.T) {
		report, err := ts.MaintenanceService.RunDaily(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, report.ClosedOrders)
		assert.Equal(t, 0, report.CreatedTransactions)
		assert.Equal(t, 0, report.ScaffoldChanges)
		assert.False(t, report.BillingPeriodCreated)

		invoices, err := ts.BillingService.ListHouseholdInvoices(ctx, h.ID)
		require.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.Equal(t, 4000, invoices[0].Amount)
	})
}
