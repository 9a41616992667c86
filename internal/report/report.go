// Package report computes the dashboard statistics: spend totals,
// budget progress, category breakdown and the daily trend series.
package report

import (
	"sort"

	"campuscoins/internal/core"
)

const (
	StatusOver    Status = "over"
	StatusWarning Status = "warning"
	StatusOnTrack Status = "on_track"
	StatusUnset   Status = "unset"

	// NoTopCategory is reported when the subset holds no transactions.
	NoTopCategory = "-"
)

type (
	Status string

	// CategoryTotal is one row of the category breakdown. Share is the
	// category's percentage of the subset total, for bar widths.
	CategoryTotal struct {
		Name  string     `json:"name"`
		Total core.Money `json:"total"`
		Share float64    `json:"share"`
	}

	// Summary is the aggregate view of a (typically period-filtered)
	// transaction subset against a budget.
	Summary struct {
		Count       int             `json:"count"`
		Sum         core.Money      `json:"sum"`
		Remaining   core.Money      `json:"remaining"`
		ByCategory  []CategoryTotal `json:"byCategory"`
		TopCategory string          `json:"topCategory"`
		Status      Status          `json:"status"`
		Overage     core.Money      `json:"overage"`
		Utilization float64         `json:"utilization"`
	}
)

// Summarize aggregates the subset. It never fails: the zero Money an
// absent amount decodes to simply contributes nothing to the sum.
func Summarize(subset []core.Transaction, budget core.Money) Summary {
	s := Summary{
		Count:       len(subset),
		TopCategory: NoTopCategory,
	}

	totals := map[string]int64{}
	var order []string // categories in first-encounter order
	for _, t := range subset {
		s.Sum.Cents += t.Amount.Cents
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] += t.Amount.Cents
	}

	// Stable sort over first-encounter order: ties keep the category
	// that appeared first.
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})
	for _, name := range order {
		ct := CategoryTotal{Name: name, Total: core.Money{Cents: totals[name]}}
		if s.Sum.Cents > 0 {
			ct.Share = float64(totals[name]) / float64(s.Sum.Cents) * 100
		}
		s.ByCategory = append(s.ByCategory, ct)
	}
	if len(order) > 0 {
		s.TopCategory = order[0]
	}

	s.Remaining = core.Money{Cents: budget.Cents - s.Sum.Cents}
	s.Utilization = utilization(s.Sum, budget)

	switch {
	case budget.Cents > 0 && s.Sum.Cents > budget.Cents:
		s.Status = StatusOver
		s.Overage = core.Money{Cents: s.Sum.Cents - budget.Cents}
	case budget.Cents > 0 && s.Utilization > 80:
		s.Status = StatusWarning
	case budget.Cents > 0:
		s.Status = StatusOnTrack
	default:
		s.Status = StatusUnset
	}

	return s
}

// utilization is the progress-bar percentage, clamped to [0,100].
func utilization(sum, budget core.Money) float64 {
	if budget.Cents <= 0 {
		return 0
	}
	pct := float64(sum.Cents) / float64(budget.Cents) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
