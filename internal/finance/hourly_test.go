package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeHourlyCostZeroSchedule(t *testing.T) {
	res := ComputeHourlyCost(HourlyCostInput{
		TotalCostCents:    500000, // R$ 5000,00
		LunchBreakMinutes: 60,
	})

	assert.Equal(t, 0, res.ActiveDays)
	assert.True(t, res.MonthlyHours.IsZero())
	// zero hours must yield a zero rate, not NaN/Inf or a panic
	assert.True(t, res.HourlyRate.IsZero())
}

func TestComputeHourlyCostWeeklyAverage(t *testing.T) {
	// Mon-Fri 09:00-18:00, one hour lunch -> 8h/day, 40h/week
	week := [7]DaySchedule{}
	for i := 0; i < 5; i++ {
		week[i] = DaySchedule{Open: "09:00", Close: "18:00"}
	}

	res := ComputeHourlyCost(HourlyCostInput{
		Week:              week,
		LunchBreakMinutes: 60,
		TotalCostCents:    500000,
		WeeksPerMonth:     DefaultWeeksPerMonth,
		Strategy:          StrategyWeeklyAverage,
	})

	assert.Equal(t, 5, res.ActiveDays)
	assert.Equal(t, 2400, res.WeeklyMinutes)
	assert.True(t, res.WeeklyHours.Equal(dec("40")), "weekly hours = %s", res.WeeklyHours)
	assert.True(t, res.AverageDailyHours.Equal(dec("8")), "avg daily = %s", res.AverageDailyHours)
	// 40 * 4.345 = 173.8
	assert.True(t, res.MonthlyHours.Equal(dec("173.8")), "monthly hours = %s", res.MonthlyHours)
	// 5000 / 173.8 = 28.7687... -> 28.77
	assert.True(t, res.HourlyRate.Equal(dec("28.77")), "hourly rate = %s", res.HourlyRate)
}

func TestComputeHourlyCostLunchClamp(t *testing.T) {
	// 30-minute span is shorter than the lunch break: clamps to zero,
	// never contributes negative minutes
	week := [7]DaySchedule{{Open: "09:00", Close: "09:30"}}
	week[1] = DaySchedule{Open: "09:00", Close: "18:00"}

	res := ComputeHourlyCost(HourlyCostInput{
		Week:              week,
		LunchBreakMinutes: 60,
		TotalCostCents:    100000,
		Strategy:          StrategyWeeklyAverage,
	})

	assert.Equal(t, 480, res.WeeklyMinutes)
	assert.Equal(t, 1, res.ActiveDays)
	assert.Equal(t, 2, res.ConfiguredDays)
}

func TestComputeHourlyCostSkipsUnconfiguredDays(t *testing.T) {
	week := [7]DaySchedule{
		{Open: "00:00", Close: "00:00"}, // placeholder, not configured
		{Open: "08:00", Close: ""},      // half-configured, skipped
		{Open: "", Close: "18:00"},      // half-configured, skipped
		{Open: "08:00", Close: "12:00"},
	}

	res := ComputeHourlyCost(HourlyCostInput{
		Week:              week,
		LunchBreakMinutes: 60,
		Strategy:          StrategyWeeklyAverage,
	})

	assert.Equal(t, 1, res.ConfiguredDays)
	assert.Equal(t, 180, res.WeeklyMinutes)
}

func TestComputeHourlyCostCrossMidnight(t *testing.T) {
	week := [7]DaySchedule{{Open: "22:00", Close: "04:00"}}

	// without the flag, end before start counts as zero
	res := ComputeHourlyCost(HourlyCostInput{
		Week:              week,
		LunchBreakMinutes: 60,
		Strategy:          StrategyWeeklyAverage,
	})
	assert.Equal(t, 0, res.WeeklyMinutes)
	assert.Equal(t, 0, res.ActiveDays)

	// with the flag, the shift spans midnight: 6h - 1h lunch = 5h
	res = ComputeHourlyCost(HourlyCostInput{
		Week:              week,
		LunchBreakMinutes: 60,
		CrossMidnight:     true,
		Strategy:          StrategyWeeklyAverage,
	})
	assert.Equal(t, 300, res.WeeklyMinutes)
	assert.Equal(t, 1, res.ActiveDays)
}

func TestComputeHourlyCostFlatWeeks(t *testing.T) {
	// Mon-Fri 08:00-17:00 -> 8h net/day, 40h/week
	week := [7]DaySchedule{}
	for i := 0; i < 5; i++ {
		week[i] = DaySchedule{Open: "08:00", Close: "17:00"}
	}

	res := ComputeHourlyCost(HourlyCostInput{
		Week:              week,
		LunchBreakMinutes: 60,
		TotalCostCents:    400000, // R$ 4000,00
		Strategy:          StrategyFlatWeeks,
	})

	// 5 configured days * flat 4 weeks = 20 working days
	// daily cost = 4000 / 20 = 200; hourly = 200 / 8 = 25
	assert.True(t, res.AverageDailyHours.Equal(dec("8")))
	assert.True(t, res.MonthlyHours.Equal(dec("160")), "monthly hours = %s", res.MonthlyHours)
	assert.True(t, res.HourlyRate.Equal(dec("25")), "hourly rate = %s", res.HourlyRate)
}

func TestComputeHourlyCostDefaultsStrategyAndWeeks(t *testing.T) {
	week := [7]DaySchedule{{Open: "09:00", Close: "18:00"}}

	res := ComputeHourlyCost(HourlyCostInput{
		Week:              week,
		LunchBreakMinutes: 60,
		TotalCostCents:    100000,
	})

	assert.Equal(t, StrategyWeeklyAverage, res.Strategy)
	// 8h * 4.345 = 34.76
	assert.True(t, res.MonthlyHours.Equal(dec("34.76")), "monthly hours = %s", res.MonthlyHours)
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("abc")
	assert.Error(t, err)
}
