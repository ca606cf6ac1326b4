package handler

import (
	"net/http"
	"time"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/config"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/finance"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/models"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HourlyHandler derives the cost-per-productive-hour figure.
type HourlyHandler struct {
	DB      *gorm.DB
	Pricing config.PricingConfig
}

func NewHourlyHandler(db *gorm.DB, pricing config.PricingConfig) *HourlyHandler {
	return &HourlyHandler{DB: db, Pricing: pricing}
}

func scheduleToWeek(s *models.BusinessHours) [7]finance.DaySchedule {
	return [7]finance.DaySchedule{
		{Open: s.MondayOpen, Close: s.MondayClose},
		{Open: s.TuesdayOpen, Close: s.TuesdayClose},
		{Open: s.WednesdayOpen, Close: s.WednesdayClose},
		{Open: s.ThursdayOpen, Close: s.ThursdayClose},
		{Open: s.FridayOpen, Close: s.FridayClose},
		{Open: s.SaturdayOpen, Close: s.SaturdayClose},
		{Open: s.SundayOpen, Close: s.SundayClose},
	}
}

// GetHourlyCost sums the month's operational costs (by expense date) and
// divides by the schedule's productive hours. ?month=YYYY-MM defaults to
// the current month; ?strategy= overrides the configured strategy.
func (h *HourlyHandler) GetHourlyCost(c *gin.Context) {
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

	var totalCents int64
	if err := h.DB.Model(&models.OperationalCost{}).
		Where("user_id = ? AND expense_date >= ? AND expense_date < ?", user.ID, start, end).
		Select("COALESCE(SUM(value_cents), 0)").
		Scan(&totalCents).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return
	}

	// no schedule row means zero active days, which yields a zero rate
	var schedule models.BusinessHours
	err = h.DB.Where("user_id = ?", user.ID).First(&schedule).Error
	if err == gorm.ErrRecordNotFound {
		schedule = models.BusinessHours{LunchBreakMinutes: h.Pricing.LunchMinutes}
	} else if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return
	}

	strategy := h.Pricing.Strategy
	switch c.Query("strategy") {
	case finance.StrategyWeeklyAverage:
		strategy = finance.StrategyWeeklyAverage
	case finance.StrategyFlatWeeks:
		strategy = finance.StrategyFlatWeeks
	}

	weeks := finance.DefaultWeeksPerMonth
	if h.Pricing.WeeksPerMonth > 0 {
		weeks = decimal.NewFromFloat(h.Pricing.WeeksPerMonth)
	}

	result := finance.ComputeHourlyCost(finance.HourlyCostInput{
		Week:              scheduleToWeek(&schedule),
		LunchBreakMinutes: schedule.LunchBreakMinutes,
		CrossMidnight:     schedule.CrossMidnight,
		TotalCostCents:    totalCents,
		WeeksPerMonth:     weeks,
		Strategy:          strategy,
	})

	util.Success(c, util.Response{
		"month":  monthStr,
		"result": result,
	})
}
