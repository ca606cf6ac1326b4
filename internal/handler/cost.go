package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/finance"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/models"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recurring costs are materialized as individual rows at creation time,
// bounded so a missing end date cannot flood the table.
const (
	maxRecurrenceRows   = 60
	recurrenceHorizonMo = 24
)

// defaultCategory groups costs entered without a category.
const defaultCategory = "Outros"

// CostHandler serves the operational cost records.
type CostHandler struct {
	DB *gorm.DB
}

func NewCostHandler(db *gorm.DB) *CostHandler {
	return &CostHandler{DB: db}
}

type costReq struct {
	Description         string `json:"description" binding:"required,max=255"`
	Value               string `json:"value" binding:"required"`
	CostType            string `json:"cost_type" binding:"required,oneof=fixed variable"`
	ExpenseDate         string `json:"expense_date"`
	IsRecurring         bool   `json:"is_recurring"`
	RecurrenceFrequency string `json:"recurrence_frequency"`
	RecurrenceEndDate   string `json:"recurrence_end_date"`
	Category            string `json:"category" binding:"max=64"`
}

type costResp struct {
	ID                  string     `json:"id"`
	Description         string     `json:"description"`
	ValueCents          int64      `json:"value_cents"`
	Value               string     `json:"value"`
	CostType            string     `json:"cost_type"`
	ExpenseDate         *time.Time `json:"expense_date,omitempty"`
	IsRecurring         bool       `json:"is_recurring"`
	RecurrenceFrequency string     `json:"recurrence_frequency,omitempty"`
	RecurrenceEndDate   *time.Time `json:"recurrence_end_date,omitempty"`
	Category            string     `json:"category"`
}

func toCostResp(oc *models.OperationalCost) costResp {
	return costResp{
		ID:                  oc.ID,
		Description:         oc.Description,
		ValueCents:          oc.ValueCents,
		Value:               util.FormatCents(oc.ValueCents),
		CostType:            oc.CostType,
		ExpenseDate:         oc.ExpenseDate,
		IsRecurring:         oc.IsRecurring,
		RecurrenceFrequency: oc.RecurrenceFrequency,
		RecurrenceEndDate:   oc.RecurrenceEndDate,
		Category:            oc.Category,
	}
}

// parsedCost is costReq after validation.
type parsedCost struct {
	valueCents int64
	expense    *time.Time
	recEnd     *time.Time
}

func (h *CostHandler) parseReq(c *gin.Context, req *costReq) (parsedCost, bool) {
	var out parsedCost

	if err := c.ShouldBindJSON(req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parâmetros inválidos")
		return out, false
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "informe a descrição")
		return out, false
	}

	valueCents, err := util.ParseAmountToCents(req.Value)
	if err != nil || util.ValidateAmountCents(valueCents) != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "informe um valor válido")
		return out, false
	}
	out.valueCents = valueCents

	if req.ExpenseDate != "" {
		t, err := time.ParseInLocation("2006-01-02", req.ExpenseDate, time.Local)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "data da despesa inválida, use AAAA-MM-DD")
			return out, false
		}
		out.expense = &t
	}

	// recurrence frequency is required with the flag and forbidden without
	if req.IsRecurring {
		if err := util.ValidateFrequency(req.RecurrenceFrequency); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "informe a frequência da recorrência")
			return out, false
		}
		if out.expense == nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "despesa recorrente precisa de data inicial")
			return out, false
		}
	} else if req.RecurrenceFrequency != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "frequência só se aplica a despesa recorrente")
		return out, false
	}

	if req.RecurrenceEndDate != "" {
		t, err := time.ParseInLocation("2006-01-02", req.RecurrenceEndDate, time.Local)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "data final da recorrência inválida")
			return out, false
		}
		out.recEnd = &t
	}

	return out, true
}

// nextOccurrence steps a date forward by one recurrence period.
func nextOccurrence(t time.Time, frequency string) time.Time {
	switch frequency {
	case models.FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case models.FrequencyYearly:
		return t.AddDate(1, 0, 0)
	default: // monthly
		return t.AddDate(0, 1, 0)
	}
}

// CreateCost inserts a cost; recurring costs materialize one row per
// occurrence up to the end date (or a 24-month horizon, max 60 rows).
func (h *CostHandler) CreateCost(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req costReq
	parsed, ok := h.parseReq(c, &req)
	if !ok {
		return
	}

	category := strings.TrimSpace(req.Category)

	base := models.OperationalCost{
		UserID:              user.ID,
		Description:         req.Description,
		ValueCents:          parsed.valueCents,
		CostType:            req.CostType,
		IsRecurring:         req.IsRecurring,
		RecurrenceFrequency: req.RecurrenceFrequency,
		RecurrenceEndDate:   parsed.recEnd,
		Category:            category,
	}

	var rows []models.OperationalCost

	if !req.IsRecurring {
		oc := base
		oc.ID = uuid.NewString()
		oc.ExpenseDate = parsed.expense
		rows = append(rows, oc)
	} else {
		horizon := time.Now().AddDate(0, recurrenceHorizonMo, 0)
		if parsed.recEnd != nil && parsed.recEnd.Before(horizon) {
			horizon = *parsed.recEnd
		}
		for due := *parsed.expense; !due.After(horizon) && len(rows) < maxRecurrenceRows; due = nextOccurrence(due, req.RecurrenceFrequency) {
			oc := base
			oc.ID = uuid.NewString()
			d := due
			oc.ExpenseDate = &d
			rows = append(rows, oc)
		}
	}

	if len(rows) == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "a recorrência não gera nenhuma ocorrência")
		return
	}

	if err := h.DB.Create(&rows).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao salvar, tente novamente")
		return
	}

	items := make([]costResp, 0, len(rows))
	for i := range rows {
		items = append(items, toCostResp(&rows[i]))
	}

	util.Success(c, util.Response{
		"cost":        items[0],
		"occurrences": len(items),
	})
}

// ListCosts returns costs filtered by an optional ?month=YYYY-MM and
// ?cost_type=.
func (h *CostHandler) ListCosts(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	q := h.DB.Where("user_id = ?", user.ID)

	if monthStr := c.Query("month"); monthStr != "" {
		t, err := time.ParseInLocation("2006-01", monthStr, time.Local)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "mês inválido, use AAAA-MM")
			return
		}
		start, end := finance.MonthBounds(t.Year(), t.Month())
		q = q.Where("expense_date >= ? AND expense_date < ?", start, end)
	}

	if ct := c.Query("cost_type"); ct == models.CostTypeFixed || ct == models.CostTypeVariable {
		q = q.Where("cost_type = ?", ct)
	}

	var costs []models.OperationalCost
	if err := q.Order("expense_date ASC, created_at ASC").Find(&costs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return
	}

	items := make([]costResp, 0, len(costs))
	for i := range costs {
		items = append(items, toCostResp(&costs[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

func (h *CostHandler) UpdateCost(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := c.Param("id")

	var req costReq
	parsed, ok := h.parseReq(c, &req)
	if !ok {
		return
	}

	var cost models.OperationalCost
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&cost).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "despesa não encontrada")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		}
		return
	}

	// editing touches only this occurrence, never its siblings
	cost.Description = req.Description
	cost.ValueCents = parsed.valueCents
	cost.CostType = req.CostType
	cost.ExpenseDate = parsed.expense
	cost.IsRecurring = req.IsRecurring
	cost.RecurrenceFrequency = req.RecurrenceFrequency
	cost.RecurrenceEndDate = parsed.recEnd
	cost.Category = strings.TrimSpace(req.Category)

	if err := h.DB.Save(&cost).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao salvar, tente novamente")
		return
	}

	util.Success(c, util.Response{
		"cost": toCostResp(&cost),
	})
}

// DeleteCost removes the definition row. Its unpaid virtual obligation
// disappears with it; realized payments are snapshots and survive.
func (h *CostHandler) DeleteCost(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := c.Param("id")

	if err := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.OperationalCost{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao excluir")
		return
	}

	util.Success(c, util.Response{
		"message": "despesa excluída",
	})
}

// CostSummary aggregates a month's costs by type and category.
func (h *CostHandler) CostSummary(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	monthStr := c.Query("month")
	if monthStr == "" {
		monthStr = time.Now().Format("2006-01")
	}
	t, err := time.ParseInLocation("2006-01", monthStr, time.Local)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "mês inválido, use AAAA-MM")
		return
	}
	start, end := finance.MonthBounds(t.Year(), t.Month())

	var costs []models.OperationalCost
	if err := h.DB.
		Where("user_id = ? AND expense_date >= ? AND expense_date < ?", user.ID, start, end).
		Find(&costs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return
	}

	type categorySummary struct {
		Category   string `json:"category"`
		TotalCents int64  `json:"total_cents"`
		Total      string `json:"total"`
	}

	var totalCents, fixedCents, variableCents int64
	catMap := make(map[string]*categorySummary)

	for i := range costs {
		oc := &costs[i]
		totalCents += oc.ValueCents
		if oc.CostType == models.CostTypeFixed {
			fixedCents += oc.ValueCents
		} else {
			variableCents += oc.ValueCents
		}

		category := oc.Category
		if category == "" {
			category = defaultCategory
		}
		cs, ok := catMap[category]
		if !ok {
			cs = &categorySummary{Category: category}
			catMap[category] = cs
		}
		cs.TotalCents += oc.ValueCents
	}

	catList := make([]categorySummary, 0, len(catMap))
	for _, cs := range catMap {
		cs.Total = util.FormatCents(cs.TotalCents)
		catList = append(catList, *cs)
	}

	util.Success(c, util.Response{
		"month":          monthStr,
		"total_cents":    totalCents,
		"total":          util.FormatCents(totalCents),
		"fixed_cents":    fixedCents,
		"fixed":          util.FormatCents(fixedCents),
		"variable_cents": variableCents,
		"variable":       util.FormatCents(variableCents),
		"by_category":    catList,
	})
}
