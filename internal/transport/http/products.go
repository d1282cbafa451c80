package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/PauKap/rupees/internal/app"
	"github.com/PauKap/rupees/internal/domain"
)

// CatalogService is the minimal interface needed for product endpoints.
type CatalogService interface {
	CreateProduct(ctx context.Context, caller domain.User, in app.CreateProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, caller domain.User, productID string, in app.UpdateProductInput) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// HandleProducts returns an HTTP handler for listing and creating products.
func HandleProducts(svc CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := userFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
			return
		}

		switch r.Method {
		case http.MethodGet:
			products, err := svc.ListProducts(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]productResponse, 0, len(products))
			for _, p := range products {
				resp = append(resp, toProductResponse(p))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createProductRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			expireDate, err := time.Parse(time.RFC3339, req.ExpireDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidExpireDate, "invalid expire_date format")
				return
			}

			product, err := svc.CreateProduct(r.Context(), caller, app.CreateProductInput{
				ProductName:     req.ProductName,
				Cost:            req.Cost,
				AmountAvailable: req.AmountAvailable,
				ExpireDate:      expireDate,
				ProductImage:    req.ProductImage,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toProductResponse(product))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleProductUpdate returns an HTTP handler for PUT /products/{id}.
func HandleProductUpdate(svc CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := parseProductPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		caller, err := userFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
			return
		}

		var req updateProductRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		patch := app.UpdateProductInput{
			ProductName:     req.ProductName,
			Cost:            req.Cost,
			AmountAvailable: req.AmountAvailable,
			ProductImage:    req.ProductImage,
		}
		if req.ExpireDate != nil {
			parsed, err := time.Parse(time.RFC3339, *req.ExpireDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidExpireDate, "invalid expire_date format")
				return
			}
			patch.ExpireDate = &parsed
		}

		product, err := svc.UpdateProduct(r.Context(), caller, productID, patch)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toProductResponse(product))
	}
}

func parseProductPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 {
		return "", false
	}
	if parts[0] != "products" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type createProductRequest struct {
	ProductName     string `json:"product_name"`
	Cost            int64  `json:"cost"`
	AmountAvailable int    `json:"amount_available"`
	ExpireDate      string `json:"expire_date"`
	ProductImage    string `json:"product_image,omitempty"`
}

type updateProductRequest struct {
	ProductName     *string `json:"product_name,omitempty"`
	Cost            *int64  `json:"cost,omitempty"`
	AmountAvailable *int    `json:"amount_available,omitempty"`
	ExpireDate      *string `json:"expire_date,omitempty"`
	ProductImage    *string `json:"product_image,omitempty"`
}

type productResponse struct {
	ID              string    `json:"id"`
	SellerID        string    `json:"seller_id"`
	ProductName     string    `json:"product_name"`
	Cost            int64     `json:"cost"`
	AmountAvailable int       `json:"amount_available"`
	ExpireDate      time.Time `json:"expire_date"`
	ProductImage    string    `json:"product_image,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:              p.ID,
		SellerID:        p.SellerID,
		ProductName:     p.ProductName,
		Cost:            p.Cost,
		AmountAvailable: p.AmountAvailable,
		ExpireDate:      p.ExpireDate,
		ProductImage:    p.ProductImage,
		CreatedAt:       p.CreatedAt,
	}
}
