package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/PauKap/rupees/internal/app"
	"github.com/PauKap/rupees/internal/domain"
)

// Buyer is the minimal interface needed for the buy endpoint.
type Buyer interface {
	Buy(ctx context.Context, caller domain.User, in app.BuyInput) (domain.BuyResult, error)
}

// HandleBuy returns an HTTP handler for POST /buy.
func HandleBuy(svc Buyer, logger *zap.Logger) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
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

		var req buyRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.ProductID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		result, err := svc.Buy(r.Context(), caller, app.BuyInput{
			ProductID: req.ProductID,
			Quantity:  req.Amount,
		})
		if err != nil {
			// An unrepresentable remainder means a balance got past the
			// deposit invariant; that is an internal fault, not a
			// caller error.
			if errors.Is(err, domain.ErrUnrepresentableAmount) {
				logger.Error("change-making failed after settled purchase",
					zap.String("buyer_id", caller.ID),
					zap.String("product_id", req.ProductID),
					zap.Error(err),
				)
			}
			writeDomainError(w, err)
			return
		}

		change := make([]coinResponse, 0, len(result.Change))
		for _, c := range result.Change {
			change = append(change, coinResponse{Denomination: c.Denomination, Count: c.Count})
		}
		resp := buyResponse{
			Product:    toProductResponse(result.Product),
			Quantity:   result.Quantity,
			TotalSpent: result.TotalSpent,
			Change:     change,
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// buyRequest mirrors the webapp client, which posts the quantity as
// "amount".
type buyRequest struct {
	ProductID string `json:"product_id"`
	Amount    int    `json:"amount"`
}

type coinResponse struct {
	Denomination int64 `json:"denomination"`
	Count        int   `json:"count"`
}

type buyResponse struct {
	Product    productResponse `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalSpent int64           `json:"total_spent"`
	Change     []coinResponse  `json:"change"`
}
