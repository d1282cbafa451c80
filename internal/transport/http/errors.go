package http

import (
	"encoding/json"
	"net/http"

	"github.com/PauKap/rupees/internal/domain"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeUnauthorized        = "unauthorized"
	codeForbidden           = "forbidden"
	codeProductNotFound     = "product_not_found"
	codeProductNameRequired = "product_name_required"
	codeInvalidCost         = "invalid_cost"
	codeInvalidStock        = "invalid_amount_available"
	codeInvalidQuantity     = "invalid_quantity"
	codeInvalidExpireDate   = "invalid_expire_date"
	codeImageTooLarge       = "image_too_large"
	codeInvalidDenomination = "invalid_denomination"
	codeProductExpired      = "product_expired"
	codeOutOfStock          = "out_of_stock"
	codeInsufficientFunds   = "insufficient_funds"
	codeInvalidID           = "invalid_id"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps core sentinel errors onto HTTP statuses and
// machine codes. Anything unmapped (including ErrUnrepresentableAmount,
// which signals a broken internal invariant) surfaces as a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrForbidden:
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case domain.ErrProductNotFound:
		writeError(w, http.StatusNotFound, codeProductNotFound, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrProductNameRequired:
		writeError(w, http.StatusBadRequest, codeProductNameRequired, err.Error())
	case domain.ErrInvalidCost:
		writeError(w, http.StatusBadRequest, codeInvalidCost, err.Error())
	case domain.ErrInvalidStock:
		writeError(w, http.StatusBadRequest, codeInvalidStock, err.Error())
	case domain.ErrInvalidQuantity:
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case domain.ErrExpireDateRequired, domain.ErrExpireDateInPast, domain.ErrExpireDateNonBusiness:
		writeError(w, http.StatusBadRequest, codeInvalidExpireDate, err.Error())
	case domain.ErrImageTooLarge:
		writeError(w, http.StatusBadRequest, codeImageTooLarge, err.Error())
	case domain.ErrInvalidDenomination:
		writeError(w, http.StatusBadRequest, codeInvalidDenomination, err.Error())
	case domain.ErrProductExpired:
		writeError(w, http.StatusConflict, codeProductExpired, err.Error())
	case domain.ErrOutOfStock:
		writeError(w, http.StatusConflict, codeOutOfStock, err.Error())
	case domain.ErrInsufficientFunds:
		writeError(w, http.StatusConflict, codeInsufficientFunds, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
