package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"campuscoins/internal/core"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends a single-message error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeFieldErrors sends the per-field validation response. Every
// message is recoverable: the caller fixes the field and retries.
func writeFieldErrors(w http.ResponseWriter, errs map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
}

// amountString accepts the amount field as either a JSON string
// ("12.50") or a bare number (12.5). Validation needs the raw textual
// form: "007" and "12.345" are only detectable as strings.
type amountString string

func (a *amountString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amountString(s)
		return nil
	}
	*a = amountString(strings.TrimSpace(string(data)))
	return nil
}

// transactionPayload is the create/update request body.
type transactionPayload struct {
	Description string       `json:"description"`
	Amount      amountString `json:"amount"`
	Category    string       `json:"category"`
	Date        string       `json:"date"`
}

// validate checks every field and collects one message per failing
// field, so the caller sees all problems at once.
func (p transactionPayload) validate() (core.Money, map[string]string) {
	errs := map[string]string{}

	if err := core.ValidateDescription(p.Description); err != nil {
		errs["description"] = err.Error()
	}
	amount, err := core.ParseAmount(string(p.Amount))
	if err != nil {
		errs["amount"] = err.Error()
	}
	if err := core.ValidateCategory(p.Category); err != nil {
		errs["category"] = err.Error()
	}
	if err := core.ValidateDate(p.Date); err != nil {
		errs["date"] = err.Error()
	}

	if len(errs) > 0 {
		return core.Money{}, errs
	}
	return amount, nil
}

// withSecurityHeaders adds baseline security headers to every response.
func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
