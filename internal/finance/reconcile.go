package finance

import (
	"sort"
	"strings"
	"time"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/models"
)

// StatusOpen is the display status of a virtual (never-paid) obligation.
// It is never stored on a CostPayment row.
const StatusOpen = "open"

// PayableItem is one reconciled obligation for a target month: either a real
// payment row, or a virtual placeholder for a cost that was never paid.
type PayableItem struct {
	ID                string     `json:"id"`
	IsVirtual         bool       `json:"is_virtual"`
	OperationalCostID *string    `json:"operational_cost_id,omitempty"`
	Description       string     `json:"description"`
	DueDate           time.Time  `json:"due_date"`
	AmountCents       int64      `json:"amount_cents"`
	AmountPaidCents   *int64     `json:"amount_paid_cents,omitempty"`
	PaymentDate       *time.Time `json:"payment_date,omitempty"`
	Category          string     `json:"category,omitempty"`
	Status            string     `json:"status"`
}

// Reconcile merges the tenant's cost definitions with the payment rows
// already fetched for the target month, producing exactly one PayableItem
// per obligation due in that month.
//
// costs may be the tenant's full definition set: filtering by expense date
// happens here. payments must already be restricted to due dates inside the
// target month. today is the caller's clock; the overdue test compares due
// dates against today's midnight, so an obligation due today is not yet
// overdue.
func Reconcile(costs []models.OperationalCost, payments []models.CostPayment, year int, month time.Month, today time.Time) []PayableItem {
	start, end := MonthBounds(year, month)
	cutoff := DateOnly(today)

	// which definitions already have a realized payment
	paidFor := make(map[string]bool, len(payments))
	for i := range payments {
		if payments[i].OperationalCostID != nil {
			paidFor[*payments[i].OperationalCostID] = true
		}
	}

	items := make([]PayableItem, 0, len(payments)+len(costs))

	// real payment rows first; a stored "pending" past its due date is
	// shown as overdue, all other stored statuses pass through untouched
	for i := range payments {
		p := &payments[i]
		status := p.Status
		if status == models.StatusPending && p.DueDate.Before(cutoff) {
			status = models.StatusOverdue
		}
		items = append(items, PayableItem{
			ID:                p.ID,
			IsVirtual:         false,
			OperationalCostID: p.OperationalCostID,
			Description:       p.Description,
			DueDate:           p.DueDate,
			AmountCents:       p.AmountOriginalCents,
			AmountPaidCents:   p.AmountPaidCents,
			PaymentDate:       p.PaymentDate,
			Status:            status,
		})
	}

	// virtual placeholders for definitions due this month with no payment
	for i := range costs {
		c := &costs[i]
		due := start
		if c.ExpenseDate != nil {
			due = DateOnly(*c.ExpenseDate)
			if due.Before(start) || !due.Before(end) {
				continue
			}
		}
		if paidFor[c.ID] {
			continue
		}
		status := StatusOpen
		if due.Before(cutoff) {
			status = models.StatusOverdue
		}
		costID := c.ID
		items = append(items, PayableItem{
			ID:                "virtual-" + c.ID,
			IsVirtual:         true,
			OperationalCostID: &costID,
			Description:       c.Description,
			DueDate:           due,
			AmountCents:       c.ValueCents,
			Category:          c.Category,
			Status:            status,
		})
	}

	// ascending by due date; ties keep input order (real rows first)
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].DueDate.Before(items[b].DueDate)
	})

	return items
}

// PaymentStatusFor derives the stored status of a registered payment.
// Strictly-less means partial; paying the exact amount or more is simply
// paid, never an error.
func PaymentStatusFor(paidCents, originalCents int64) string {
	if paidCents < originalCents {
		return models.StatusPartiallyPaid
	}
	return models.StatusPaid
}

// Filter narrows a reconciled list by a case-insensitive substring of the
// description and/or a status bucket. The "pending" and "open" buckets are
// the same: "open" only ever appears on virtual items, "pending" only on
// stored rows, and users see them as one thing.
func Filter(items []PayableItem, search, status string) []PayableItem {
	search = strings.ToLower(strings.TrimSpace(search))
	status = strings.TrimSpace(status)

	out := make([]PayableItem, 0, len(items))
	for _, it := range items {
		if search != "" && !strings.Contains(strings.ToLower(it.Description), search) {
			continue
		}
		if status != "" && status != "all" && !statusMatches(it.Status, status) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func statusMatches(itemStatus, want string) bool {
	if want == models.StatusPending || want == StatusOpen {
		return itemStatus == models.StatusPending || itemStatus == StatusOpen
	}
	return itemStatus == want
}
