package report

import (
	"fmt"
	"strconv"
	"time"

	"campuscoins/internal/core"
)

type (
	// TrendPoint is one day of the trend chart.
	TrendPoint struct {
		Label string     `json:"label"`
		Date  string     `json:"date"`
		Total core.Money `json:"total"`
	}

	// TrendSeries carries the per-day totals plus the normalization
	// maximum for bar heights.
	TrendSeries struct {
		Points []TrendPoint `json:"points"`
		Max    core.Money   `json:"max"`
	}
)

// DailyTrend builds the per-day series for a year-month period. Past
// months run from day 1 through their last day; the current month stops
// at today so future days never appear. An unparseable period falls
// back to the current month. Max is floored at one cent so an all-zero
// series still renders visible bars.
func DailyTrend(subset []core.Transaction, period string, now time.Time) TrendSeries {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		period = start.Format("2006-01")
	}

	lastDay := daysInMonth(start.Year(), start.Month())
	if start.Year() == now.Year() && start.Month() == now.Month() {
		lastDay = now.Day()
	}

	byDate := map[string]int64{}
	for _, t := range subset {
		byDate[t.Date] += t.Amount.Cents
	}

	series := TrendSeries{Max: core.Money{Cents: 1}}
	for day := 1; day <= lastDay; day++ {
		date := fmt.Sprintf("%s-%02d", period, day)
		total := core.Money{Cents: byDate[date]}
		if total.Cents > series.Max.Cents {
			series.Max = total
		}
		series.Points = append(series.Points, TrendPoint{
			Label: strconv.Itoa(day),
			Date:  date,
			Total: total,
		})
	}
	return series
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
