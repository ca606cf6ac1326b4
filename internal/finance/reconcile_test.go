package finance

import (
	"testing"
	"time"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func TestReconcileVirtualItemForUnpaidCost(t *testing.T) {
	costs := []models.OperationalCost{
		{ID: "a", Description: "Aluguel", ValueCents: 100000, ExpenseDate: datePtr(2024, time.March, 5)},
	}

	items := Reconcile(costs, nil, 2024, time.March, date(2024, time.March, 1))

	require.Len(t, items, 1)
	assert.Equal(t, "virtual-a", items[0].ID)
	assert.True(t, items[0].IsVirtual)
	assert.Equal(t, int64(100000), items[0].AmountCents)
	assert.Equal(t, StatusOpen, items[0].Status)
	require.NotNil(t, items[0].OperationalCostID)
	assert.Equal(t, "a", *items[0].OperationalCostID)
}

func TestReconcileUniqueness(t *testing.T) {
	costs := []models.OperationalCost{
		{ID: "a", Description: "Aluguel", ValueCents: 100000, ExpenseDate: datePtr(2024, time.March, 5)},
	}
	payments := []models.CostPayment{
		{
			ID:                  "p1",
			OperationalCostID:   strPtr("a"),
			Description:         "Aluguel",
			DueDate:             date(2024, time.March, 5),
			AmountOriginalCents: 100000,
			AmountPaidCents:     int64Ptr(100000),
			PaymentDate:         datePtr(2024, time.March, 4),
			Status:              models.StatusPaid,
		},
	}

	items := Reconcile(costs, payments, 2024, time.March, date(2024, time.March, 10))

	// the paid definition must not also produce a virtual placeholder
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.False(t, items[0].IsVirtual)
	assert.Equal(t, models.StatusPaid, items[0].Status)
}

func TestReconcileOverdueBoundary(t *testing.T) {
	costs := []models.OperationalCost{
		{ID: "a", Description: "Luz", ValueCents: 5000, ExpenseDate: datePtr(2024, time.January, 1)},
	}

	// a month later: overdue
	items := Reconcile(costs, nil, 2024, time.January, date(2024, time.February, 1))
	require.Len(t, items, 1)
	assert.Equal(t, models.StatusOverdue, items[0].Status)

	// same day: not yet overdue
	items = Reconcile(costs, nil, 2024, time.January, date(2024, time.January, 1))
	require.Len(t, items, 1)
	assert.Equal(t, StatusOpen, items[0].Status)
}

func TestReconcileUpgradesStoredPending(t *testing.T) {
	payments := []models.CostPayment{
		{ID: "p1", Description: "Seguro", DueDate: date(2024, time.March, 10), AmountOriginalCents: 20000, Status: models.StatusPending},
		{ID: "p2", Description: "IPTU", DueDate: date(2024, time.March, 20), AmountOriginalCents: 30000, Status: models.StatusPending},
	}

	items := Reconcile(nil, payments, 2024, time.March, date(2024, time.March, 15))

	require.Len(t, items, 2)
	assert.Equal(t, models.StatusOverdue, items[0].Status)
	assert.Equal(t, models.StatusPending, items[1].Status)
}

func TestReconcileNeverOverridesSettledStatuses(t *testing.T) {
	payments := []models.CostPayment{
		{ID: "p1", Description: "a", DueDate: date(2024, time.March, 1), AmountOriginalCents: 100, AmountPaidCents: int64Ptr(100), Status: models.StatusPaid},
		{ID: "p2", Description: "b", DueDate: date(2024, time.March, 1), AmountOriginalCents: 100, AmountPaidCents: int64Ptr(50), Status: models.StatusPartiallyPaid},
		{ID: "p3", Description: "c", DueDate: date(2024, time.March, 1), AmountOriginalCents: 100, Status: models.StatusCancelled},
	}

	items := Reconcile(nil, payments, 2024, time.March, date(2024, time.June, 1))

	require.Len(t, items, 3)
	assert.Equal(t, models.StatusPaid, items[0].Status)
	assert.Equal(t, models.StatusPartiallyPaid, items[1].Status)
	assert.Equal(t, models.StatusCancelled, items[2].Status)
}

func TestReconcileFiltersCostsOutsidePeriod(t *testing.T) {
	costs := []models.OperationalCost{
		{ID: "a", Description: "março", ValueCents: 100, ExpenseDate: datePtr(2024, time.March, 5)},
		{ID: "b", Description: "abril", ValueCents: 200, ExpenseDate: datePtr(2024, time.April, 5)},
		{ID: "c", Description: "fevereiro", ValueCents: 300, ExpenseDate: datePtr(2024, time.February, 28)},
	}

	items := Reconcile(costs, nil, 2024, time.March, date(2024, time.March, 1))

	require.Len(t, items, 1)
	assert.Equal(t, "virtual-a", items[0].ID)
}

func TestReconcileNilExpenseDateFallsBackToFirstOfMonth(t *testing.T) {
	costs := []models.OperationalCost{
		{ID: "a", Description: "sem data", ValueCents: 100},
	}

	items := Reconcile(costs, nil, 2024, time.March, date(2024, time.March, 15))

	require.Len(t, items, 1)
	assert.Equal(t, date(2024, time.March, 1), items[0].DueDate)
	assert.Equal(t, models.StatusOverdue, items[0].Status)
}

func TestReconcileSortsByDueDateStable(t *testing.T) {
	costs := []models.OperationalCost{
		{ID: "late", Description: "dia 25", ValueCents: 1, ExpenseDate: datePtr(2024, time.March, 25)},
		{ID: "early", Description: "dia 2", ValueCents: 1, ExpenseDate: datePtr(2024, time.March, 2)},
	}
	payments := []models.CostPayment{
		{ID: "p-mid", Description: "dia 10", DueDate: date(2024, time.March, 10), AmountOriginalCents: 1, Status: models.StatusPaid},
		{ID: "p-also-25", Description: "dia 25 pago", DueDate: date(2024, time.March, 25), AmountOriginalCents: 1, Status: models.StatusPaid},
	}

	items := Reconcile(costs, payments, 2024, time.March, date(2024, time.March, 1))

	require.Len(t, items, 4)
	assert.Equal(t, "virtual-early", items[0].ID)
	assert.Equal(t, "p-mid", items[1].ID)
	// equal due dates: real payment was emitted before the virtual item
	// and stable sort keeps that order
	assert.Equal(t, "p-also-25", items[2].ID)
	assert.Equal(t, "virtual-late", items[3].ID)
}

func TestReconcileTolerateOrphanPayment(t *testing.T) {
	// the definition was deleted after payment: the payment still shows,
	// using its own snapshotted description and amount
	payments := []models.CostPayment{
		{ID: "p1", OperationalCostID: strPtr("gone"), Description: "Produto químico", DueDate: date(2024, time.March, 3), AmountOriginalCents: 4500, AmountPaidCents: int64Ptr(4500), Status: models.StatusPaid},
	}

	items := Reconcile(nil, payments, 2024, time.March, date(2024, time.March, 4))

	require.Len(t, items, 1)
	assert.Equal(t, "Produto químico", items[0].Description)
	assert.Equal(t, int64(4500), items[0].AmountCents)
}

func TestReconcileIdempotent(t *testing.T) {
	costs := []models.OperationalCost{
		{ID: "a", Description: "Aluguel", ValueCents: 100000, ExpenseDate: datePtr(2024, time.March, 5)},
		{ID: "b", Description: "Água", ValueCents: 8000, ExpenseDate: datePtr(2024, time.March, 12)},
	}
	payments := []models.CostPayment{
		{ID: "p1", OperationalCostID: strPtr("b"), Description: "Água", DueDate: date(2024, time.March, 12), AmountOriginalCents: 8000, AmountPaidCents: int64Ptr(4000), Status: models.StatusPartiallyPaid},
	}
	now := date(2024, time.March, 20)

	first := Reconcile(costs, payments, 2024, time.March, now)
	second := Reconcile(costs, payments, 2024, time.March, now)

	assert.Equal(t, first, second)
}

func TestPaymentStatusFor(t *testing.T) {
	assert.Equal(t, models.StatusPaid, PaymentStatusFor(100000, 100000))
	assert.Equal(t, models.StatusPartiallyPaid, PaymentStatusFor(99999, 100000))
	// overpaying is still just paid
	assert.Equal(t, models.StatusPaid, PaymentStatusFor(100001, 100000))
}

func TestFilterBySearch(t *testing.T) {
	items := []PayableItem{
		{ID: "1", Description: "Aluguel do galpão", Status: StatusOpen},
		{ID: "2", Description: "Conta de luz", Status: models.StatusPaid},
	}

	got := Filter(items, "ALUGUEL", "")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterStatusBucketPendingMatchesOpen(t *testing.T) {
	items := []PayableItem{
		{ID: "1", Description: "a", Status: StatusOpen},
		{ID: "2", Description: "b", Status: models.StatusPending},
		{ID: "3", Description: "c", Status: models.StatusPaid},
		{ID: "4", Description: "d", Status: models.StatusOverdue},
	}

	got := Filter(items, "", models.StatusPending)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)

	// "open" is the same bucket
	assert.Equal(t, got, Filter(items, "", StatusOpen))

	got = Filter(items, "", models.StatusOverdue)
	require.Len(t, got, 1)
	assert.Equal(t, "4", got[0].ID)

	assert.Len(t, Filter(items, "", "all"), 4)
}
