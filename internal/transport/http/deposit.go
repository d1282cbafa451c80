package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/PauKap/rupees/internal/domain"
)

// Depositor is the minimal interface needed for the deposit endpoint.
type Depositor interface {
	Deposit(ctx context.Context, caller domain.User, amount int64) (int64, error)
}

// HandleDeposit returns an HTTP handler for POST /deposit.
func HandleDeposit(svc Depositor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		caller, err := userFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
			return
		}

		var req depositRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		balance, err := svc.Deposit(r.Context(), caller, req.Amount)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(balanceResponse{Balance: balance})
	}
}

// Resetter is the minimal interface needed for the reset endpoint.
type Resetter interface {
	ResetDeposit(ctx context.Context, caller domain.User) (int64, error)
}

// HandleReset returns an HTTP handler for POST /reset.
func HandleReset(svc Resetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		caller, err := userFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
			return
		}

		refunded, err := svc.ResetDeposit(r.Context(), caller)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resetResponse{Refunded: refunded})
	}
}

type depositRequest struct {
	Amount int64 `json:"amount"`
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

type resetResponse struct {
	Refunded int64 `json:"refunded"`
}
