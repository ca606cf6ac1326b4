package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/finance"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/models"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler serves the payables report downloads.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Descrição", "Vencimento", "Valor", "Valor pago", "Situação"}

var statusLabels = map[string]string{
	finance.StatusOpen:         "Em aberto",
	models.StatusPending:       "Em aberto",
	models.StatusOverdue:       "Vencida",
	models.StatusPaid:          "Paga",
	models.StatusPartiallyPaid: "Parcialmente paga",
	models.StatusCancelled:     "Cancelada",
}

func statusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// reconciledMonth loads and reconciles a month for export. Month/year come
// from query parameters and default to the current month.
func (h *ExportHandler) reconciledMonth(c *gin.Context, user *models.User) ([]finance.PayableItem, string, bool) {
	now := time.Now()

	month := int(now.Month())
	if s := c.Query("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "mês inválido")
			return nil, "", false
		}
		month = v
	}
	year := now.Year()
	if s := c.Query("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 2000 || v > 2200 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ano inválido")
			return nil, "", false
		}
		year = v
	}

	start, end := finance.MonthBounds(year, time.Month(month))

	var costs []models.OperationalCost
	if err := h.DB.Where("user_id = ?", user.ID).Find(&costs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return nil, "", false
	}

	var payments []models.CostPayment
	if err := h.DB.
		Where("user_id = ? AND due_date >= ? AND due_date < ?", user.ID, start, end).
		Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return nil, "", false
	}

	items := finance.Reconcile(costs, payments, year, time.Month(month), now)
	return items, fmt.Sprintf("%04d%02d", year, month), true
}

func payableRow(it *finance.PayableItem) []string {
	paid := ""
	if it.AmountPaidCents != nil {
		paid = util.FormatCents(*it.AmountPaidCents)
	}
	return []string{
		it.Description,
		it.DueDate.Format("2006-01-02"),
		util.FormatCents(it.AmountCents),
		paid,
		statusLabel(it.Status),
	}
}

// ExportPayablesCSV downloads the month's reconciled payables as CSV.
func (h *ExportHandler) ExportPayablesCSV(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	items, period, ok := h.reconciledMonth(c, user)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"contas_%s.csv\"", period))

	// UTF-8 BOM so Excel renders the accents
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range items {
		writer.Write(payableRow(&items[i]))
	}
}

// ExportPayablesXLSX downloads the month's reconciled payables as XLSX.
func (h *ExportHandler) ExportPayablesXLSX(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	items, period, ok := h.reconciledMonth(c, user)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Contas a pagar"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao criar a planilha")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range items {
		row := idx + 2
		for col, value := range payableRow(&items[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 18)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"contas_%s.xlsx\"", period))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao exportar")
	}
}
