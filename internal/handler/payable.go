package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/finance"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/models"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const virtualPrefix = "virtual-"

// PayableHandler serves the reconciled accounts-payable view and payment
// registration.
type PayableHandler struct {
	DB *gorm.DB
}

func NewPayableHandler(db *gorm.DB) *PayableHandler {
	return &PayableHandler{DB: db}
}

type payableResp struct {
	ID                string     `json:"id"`
	IsVirtual         bool       `json:"is_virtual"`
	OperationalCostID *string    `json:"operational_cost_id,omitempty"`
	Description       string     `json:"description"`
	DueDate           string     `json:"due_date"`
	AmountCents       int64      `json:"amount_cents"`
	Amount            string     `json:"amount"`
	AmountPaidCents   *int64     `json:"amount_paid_cents,omitempty"`
	AmountPaid        string     `json:"amount_paid,omitempty"`
	PaymentDate       *time.Time `json:"payment_date,omitempty"`
	Status            string     `json:"status"`
}

func toPayableResp(it *finance.PayableItem) payableResp {
	r := payableResp{
		ID:                it.ID,
		IsVirtual:         it.IsVirtual,
		OperationalCostID: it.OperationalCostID,
		Description:       it.Description,
		DueDate:           it.DueDate.Format("2006-01-02"),
		AmountCents:       it.AmountCents,
		Amount:            util.FormatCents(it.AmountCents),
		AmountPaidCents:   it.AmountPaidCents,
		PaymentDate:       it.PaymentDate,
		Status:            it.Status,
	}
	if it.AmountPaidCents != nil {
		r.AmountPaid = util.FormatCents(*it.AmountPaidCents)
	}
	return r
}

// ListPayables reconciles the month's obligations. Query parameters:
// month (1-12), year, search (substring of description), status (bucket;
// pending and open are the same bucket).
func (h *PayableHandler) ListPayables(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	now := time.Now()

	month := int(now.Month())
	if s := c.Query("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "mês inválido")
			return
		}
		month = v
	}
	year := now.Year()
	if s := c.Query("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 2000 || v > 2200 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ano inválido")
			return
		}
		year = v
	}

	start, end := finance.MonthBounds(year, time.Month(month))

	// definitions are not pre-filtered: the engine matches each row's own
	// expense date against the period
	var costs []models.OperationalCost
	if err := h.DB.Where("user_id = ?", user.ID).Find(&costs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return
	}

	var payments []models.CostPayment
	if err := h.DB.
		Where("user_id = ? AND due_date >= ? AND due_date < ?", user.ID, start, end).
		Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return
	}

	items := finance.Reconcile(costs, payments, year, time.Month(month), now)
	items = finance.Filter(items, c.Query("search"), c.Query("status"))

	var totalCents, paidCents, openCents int64
	resp := make([]payableResp, 0, len(items))
	for i := range items {
		it := &items[i]
		totalCents += it.AmountCents
		switch it.Status {
		case models.StatusPaid, models.StatusPartiallyPaid:
			if it.AmountPaidCents != nil {
				paidCents += *it.AmountPaidCents
			}
		case finance.StatusOpen, models.StatusPending, models.StatusOverdue:
			openCents += it.AmountCents
		}
		resp = append(resp, toPayableResp(it))
	}

	util.Success(c, util.Response{
		"month": month,
		"year":  year,
		"items": resp,
		"total": len(resp),
		"summary": gin.H{
			"total_cents": totalCents,
			"total":       util.FormatCents(totalCents),
			"paid_cents":  paidCents,
			"paid":        util.FormatCents(paidCents),
			"open_cents":  openCents,
			"open":        util.FormatCents(openCents),
		},
	})
}

type registerPaymentReq struct {
	ID         string `json:"id" binding:"required"`
	AmountPaid string `json:"amount_paid" binding:"required"`
	DueDate    string `json:"due_date"`
	// month/year the payables view was showing; a date-less cost's payment
	// defaults its due date to the first day of that month, matching the
	// virtual item the user clicked
	Month int `json:"month"`
	Year  int `json:"year"`
}

// RegisterPayment records a full or partial payment against a payable item.
// For a virtual item a new payment row is inserted, snapshotting the cost's
// description and amount; for a real row the payment fields are overwritten
// in place, so resubmitting the dialog is an idempotent edit.
func (h *PayableHandler) RegisterPayment(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req registerPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parâmetros inválidos")
		return
	}

	// amount is validated before any write happens
	paidCents, err := util.ParseAmountToCents(req.AmountPaid)
	if err != nil || paidCents < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "informe um valor pago válido")
		return
	}

	now := time.Now()

	if strings.HasPrefix(req.ID, virtualPrefix) {
		costID := strings.TrimPrefix(req.ID, virtualPrefix)

		var cost models.OperationalCost
		if err := h.DB.Where("id = ? AND user_id = ?", costID, user.ID).First(&cost).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusNotFound, util.CodeNotFound, "despesa não encontrada")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
			}
			return
		}

		var dueDate time.Time
		switch {
		case cost.ExpenseDate != nil:
			dueDate = finance.DateOnly(*cost.ExpenseDate)
		case req.Month >= 1 && req.Month <= 12 && req.Year >= 2000 && req.Year <= 2200:
			dueDate, _ = finance.MonthBounds(req.Year, time.Month(req.Month))
		default:
			dueDate, _ = finance.MonthBounds(now.Year(), now.Month())
		}
		if req.DueDate != "" {
			t, err := time.ParseInLocation("2006-01-02", req.DueDate, time.Local)
			if err != nil {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "data de vencimento inválida")
				return
			}
			dueDate = t
		}

		payment := models.CostPayment{
			ID:                  uuid.NewString(),
			UserID:              user.ID,
			OperationalCostID:   &cost.ID,
			Description:         cost.Description,
			DueDate:             dueDate,
			AmountOriginalCents: cost.ValueCents,
			AmountPaidCents:     &paidCents,
			PaymentDate:         &now,
			Status:              finance.PaymentStatusFor(paidCents, cost.ValueCents),
		}

		if err := h.DB.Create(&payment).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao registrar o pagamento")
			return
		}

		util.Success(c, util.Response{
			"payment": gin.H{
				"id":          payment.ID,
				"status":      payment.Status,
				"amount_paid": util.FormatCents(paidCents),
			},
		})
		return
	}

	var payment models.CostPayment
	if err := h.DB.Where("id = ? AND user_id = ?", req.ID, user.ID).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "pagamento não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		}
		return
	}

	payment.AmountPaidCents = &paidCents
	payment.PaymentDate = &now
	payment.Status = finance.PaymentStatusFor(paidCents, payment.AmountOriginalCents)

	if err := h.DB.Save(&payment).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao registrar o pagamento")
		return
	}

	util.Success(c, util.Response{
		"payment": gin.H{
			"id":          payment.ID,
			"status":      payment.Status,
			"amount_paid": util.FormatCents(paidCents),
		},
	})
}
