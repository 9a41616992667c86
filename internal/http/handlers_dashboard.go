package http

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"campuscoins/internal/query"
	"campuscoins/internal/report"
)

var reMonth = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])$`)

type dashboardResponse struct {
	Month   string            `json:"month"`
	Summary report.Summary    `json:"summary"`
	Trend   report.TrendSeries `json:"trend"`
}

// handleDashboard computes (or serves cached) dashboard statistics for
// one month: summary, category breakdown and the daily trend.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	// Summary and trend must cover the same period, so a month that
	// only one of them could interpret is rejected outright.
	if !reMonth.MatchString(month) {
		writeError(w, http.StatusBadRequest, "month must be in YYYY-MM format")
		return
	}

	// Generation in the key means any mutation leaves stale entries
	// behind to age out; nothing is ever served stale.
	key := month + "@" + strconv.FormatUint(s.ledger.Generation(), 10)
	if resp, ok := s.dashCache.Get(key); ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	subset := query.View(s.ledger.Transactions(), month, nil, query.DefaultSort())
	settings := s.ledger.Settings()

	resp := dashboardResponse{
		Month:   month,
		Summary: report.Summarize(subset, settings.Budget),
		Trend:   report.DailyTrend(subset, month, time.Now()),
	}
	s.dashCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}
