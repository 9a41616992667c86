package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"campuscoins/internal/core"
	"campuscoins/internal/ledger"
)

type settingsPayload struct {
	Budget   *amountString   `json:"budget"`
	Currency *string         `json:"currency"`
	Theme    *string         `json:"theme"`
	Rates    []core.RatePair `json:"rates"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Settings())
}

// handlePatchSettings applies a shallow settings update. Absent fields
// keep their current value.
func (s *Server) handlePatchSettings(w http.ResponseWriter, r *http.Request) {
	var p settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var patch core.SettingsPatch
	errs := map[string]string{}

	if p.Budget != nil {
		if err := core.ValidateBudget(string(*p.Budget)); err != nil {
			errs["budget"] = err.Error()
		} else {
			budget, err := core.ParseAmount(string(*p.Budget))
			if err != nil {
				errs["budget"] = err.Error()
			} else {
				patch.Budget = &budget
			}
		}
	}
	if p.Currency != nil {
		currency := strings.TrimSpace(*p.Currency)
		if currency == "" {
			errs["currency"] = "Currency is required."
		} else {
			patch.Currency = &currency
		}
	}
	if p.Theme != nil {
		theme := core.Theme(*p.Theme)
		if theme != core.ThemeDark && theme != core.ThemeLight {
			errs["theme"] = "Theme must be dark or light."
		} else {
			patch.Theme = &theme
		}
	}
	if p.Rates != nil {
		patch.Rates = p.Rates
	}

	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	writeJSON(w, http.StatusOK, s.ledger.UpdateSettings(r.Context(), patch))
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var p struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch err := s.ledger.AddCategory(r.Context(), p.Name); {
	case err == nil:
		writeJSON(w, http.StatusCreated, s.ledger.Settings())
	case errors.Is(err, ledger.ErrCategoryExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeFieldErrors(w, map[string]string{"category": err.Error()})
	}
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if !s.ledger.RemoveCategory(r.Context(), name) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.Settings())
}
