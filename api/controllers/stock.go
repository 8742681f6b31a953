package controllers

import (
	"net/http"
	"strings"

	"github.com/acedk/steakout-backend/api/responses"
	"github.com/acedk/steakout-backend/api/validators"
	"github.com/acedk/steakout-backend/internal/stock"
	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/acedk/steakout-backend/pkg/errors"
	"github.com/acedk/steakout-backend/pkg/logger"
)

type adjustStockRequest struct {
	Quantity          *int64  `json:"quantity" validate:"omitempty,gte=0"`
	LowStockThreshold *int64  `json:"low_stock_threshold" validate:"omitempty,gte=0"`
	Supplier          *string `json:"supplier" validate:"omitempty,max=120"`
	Notes             *string `json:"notes" validate:"omitempty,max=500"`
}

// ListStock returns stock levels, optionally filtered by ?location=.
func ListStock(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var location *enums.StockLocation
		if raw := strings.TrimSpace(r.URL.Query().Get("location")); raw != "" {
			parsed, err := enums.ParseStockLocation(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, errors.Wrap(errors.CodeValidation, err, "invalid location"))
				return
			}
			location = &parsed
		}
		items, err := svc.List(r.Context(), location)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// GetStockItem returns a single stock row.
func GetStockItem(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// AdjustStock applies a manual stock correction.
func AdjustStock(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req adjustStockRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Adjust(r.Context(), stock.AdjustStockInput{
			ID:                id,
			Quantity:          req.Quantity,
			LowStockThreshold: req.LowStockThreshold,
			Supplier:          req.Supplier,
			Notes:             req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
