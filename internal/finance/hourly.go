package finance

import (
	"github.com/shopspring/decimal"
)

// Hourly-cost strategies. WeeklyAverage is the canonical one: weekly net
// hours extrapolated by a weeks-per-month constant (default 4.345).
// FlatWeeks is the legacy derivation kept for shops priced with it: every
// configured day counts, a flat 4 weeks per month, cost split per working
// day first.
const (
	StrategyWeeklyAverage = "weekly_average"
	StrategyFlatWeeks     = "flat_weeks"
)

// DefaultWeeksPerMonth is the average number of weeks in a month.
var DefaultWeeksPerMonth = decimal.RequireFromString("4.345")

// DaySchedule is one weekday's opening hours as "HH:MM" strings. Both
// fields empty (or both "00:00") means the shop does not open that day.
type DaySchedule struct {
	Open  string
	Close string
}

// HourlyCostInput collects everything the calculator needs. Week runs
// Monday through Sunday. TotalCostCents is the sum of operational costs for
// the target month, in centavos.
type HourlyCostInput struct {
	Week              [7]DaySchedule
	LunchBreakMinutes int
	CrossMidnight     bool
	TotalCostCents    int64
	WeeksPerMonth     decimal.Decimal
	Strategy          string
}

// HourlyCostResult is the derived breakdown. Monetary fields are in reais
// (two decimal places); hour fields are rounded to two decimals.
type HourlyCostResult struct {
	Strategy          string          `json:"strategy"`
	ConfiguredDays    int             `json:"configured_days"`
	ActiveDays        int             `json:"active_days"`
	WeeklyMinutes     int             `json:"weekly_minutes"`
	WeeklyHours       decimal.Decimal `json:"weekly_hours"`
	AverageDailyHours decimal.Decimal `json:"average_daily_hours"`
	MonthlyHours      decimal.Decimal `json:"monthly_hours"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	HourlyRate        decimal.Decimal `json:"hourly_rate"`
}

var sixty = decimal.NewFromInt(60)

// ComputeHourlyCost derives the minimum hourly rate needed to cover the
// month's costs from the weekly schedule. A schedule with no productive
// time yields a zero rate, never a division error.
func ComputeHourlyCost(in HourlyCostInput) HourlyCostResult {
	lunch := in.LunchBreakMinutes
	if lunch < 0 {
		lunch = 0
	}

	var (
		weeklyMinutes  int
		activeDays     int // days contributing net minutes > 0
		configuredDays int // days with any usable opening hours
	)

	for _, day := range in.Week {
		if day.Open == "" || day.Close == "" {
			continue
		}
		if day.Open == "00:00" && day.Close == "00:00" {
			continue
		}
		openMin, err := ParseClock(day.Open)
		if err != nil {
			continue
		}
		closeMin, err := ParseClock(day.Close)
		if err != nil {
			continue
		}
		configuredDays++

		raw := closeMin - openMin
		if raw < 0 {
			if in.CrossMidnight {
				raw += 24 * 60
			} else {
				raw = 0
			}
		}
		net := raw - lunch
		if net < 0 {
			net = 0
		}
		weeklyMinutes += net
		if net > 0 {
			activeDays++
		}
	}

	weeklyHours := decimal.NewFromInt(int64(weeklyMinutes)).Div(sixty)
	totalCost := decimal.New(in.TotalCostCents, -2)

	res := HourlyCostResult{
		Strategy:       in.Strategy,
		ConfiguredDays: configuredDays,
		ActiveDays:     activeDays,
		WeeklyMinutes:  weeklyMinutes,
		WeeklyHours:    weeklyHours.Round(2),
		TotalCost:      totalCost,
	}
	if res.Strategy == "" {
		res.Strategy = StrategyWeeklyAverage
	}

	switch res.Strategy {
	case StrategyFlatWeeks:
		// legacy path: any configured day counts, flat 4 weeks, cost
		// split per working day before dividing by daily hours
		if configuredDays == 0 {
			return res
		}
		avgDaily := weeklyHours.Div(decimal.NewFromInt(int64(configuredDays)))
		workingDays := decimal.NewFromInt(int64(configuredDays * 4))
		res.AverageDailyHours = avgDaily.Round(2)
		res.MonthlyHours = avgDaily.Mul(workingDays).Round(2)
		if avgDaily.IsZero() {
			return res
		}
		dailyCost := totalCost.Div(workingDays)
		res.HourlyRate = dailyCost.Div(avgDaily).Round(2)
	default:
		weeks := in.WeeksPerMonth
		if weeks.IsZero() {
			weeks = DefaultWeeksPerMonth
		}
		monthlyHours := weeklyHours.Mul(weeks)
		res.MonthlyHours = monthlyHours.Round(2)
		if activeDays > 0 {
			res.AverageDailyHours = weeklyHours.Div(decimal.NewFromInt(int64(activeDays))).Round(2)
		}
		if monthlyHours.IsPositive() {
			res.HourlyRate = totalCost.Div(monthlyHours).Round(2)
		}
	}

	return res
}
