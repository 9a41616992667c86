package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"campuscoins/internal/core"
	"campuscoins/internal/ledger"
	"campuscoins/internal/log"
	"campuscoins/internal/query"
	"campuscoins/internal/search"
)

// transactionRow is one list-view row: the raw record plus highlighted
// HTML for the fields the view renders as rich text.
type transactionRow struct {
	core.Transaction
	DescriptionHTML string `json:"descriptionHtml"`
	CategoryHTML    string `json:"categoryHtml"`
}

type listResponse struct {
	Transactions []transactionRow `json:"transactions"`
	Count        int              `json:"count"`
	PatternValid bool             `json:"patternValid"`
}

// handleListTransactions computes the list view: period filter, search
// match, stable sort, per-row highlighting. An invalid pattern matches
// everything and is flagged so the view can show an inline message.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pattern := q.Get("q")
	caseSensitive, _ := strconv.ParseBool(q.Get("case"))
	sort := query.ParseSort(q.Get("sort"))
	period := strings.TrimSpace(q.Get("month"))

	matcher := search.Compile(pattern, caseSensitive)
	view := query.View(s.ledger.Transactions(), period, matcher, sort)

	rows := make([]transactionRow, 0, len(view))
	for _, t := range view {
		rows = append(rows, transactionRow{
			Transaction:     t,
			DescriptionHTML: matcher.Highlight(t.Description),
			CategoryHTML:    matcher.Highlight(t.Category),
		})
	}

	writeJSON(w, http.StatusOK, listResponse{
		Transactions: rows,
		Count:        len(rows),
		PatternValid: search.IsValidPattern(pattern),
	})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var p transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, errs := p.validate()
	if errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	t := s.ledger.Add(r.Context(), p.Description, amount, p.Category, p.Date)
	s.logger.InfoContext(r.Context(), "Transaction created",
		log.FieldOperation, log.OpCreate,
		log.FieldTransactionID, t.ID,
		log.FieldAmountCents, t.Amount.Cents)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var p transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, errs := p.validate()
	if errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	t, ok := s.ledger.Update(r.Context(), id, ledger.Update{
		Description: p.Description,
		Amount:      amount,
		Category:    p.Category,
		Date:        p.Date,
	})
	if !ok {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	s.logger.InfoContext(r.Context(), "Transaction updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldTransactionID, id)
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.ledger.Delete(r.Context(), id) {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	s.logger.InfoContext(r.Context(), "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldTransactionID, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearTransactions(w http.ResponseWriter, r *http.Request) {
	s.ledger.Clear(r.Context())
	s.logger.InfoContext(r.Context(), "Transaction log cleared",
		log.FieldOperation, log.OpClear)
	w.WriteHeader(http.StatusNoContent)
}
