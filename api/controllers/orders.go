package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/acedk/steakout-backend/api/responses"
	"github.com/acedk/steakout-backend/api/validators"
	"github.com/acedk/steakout-backend/internal/orders"
	"github.com/acedk/steakout-backend/pkg/errors"
	"github.com/acedk/steakout-backend/pkg/logger"
	"github.com/acedk/steakout-backend/pkg/types"
)

type addonRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type orderLineRequest struct {
	MenuItemID uuid.UUID      `json:"menu_item_id" validate:"required"`
	Quantity   int            `json:"quantity" validate:"required,gt=0"`
	Addons     []addonRequest `json:"addons" validate:"omitempty,dive"`

	// AddonNames accepts the older "Name xN" string form still sent by
	// some storefront builds.
	AddonNames []string `json:"addon_names" validate:"omitempty,dive,required"`
}

type quoteRequest struct {
	Lines []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type createOrderRequest struct {
	CustomerName     string             `json:"customer_name" validate:"required,max=120"`
	Lines            []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
	ClientTotalPence *int64             `json:"client_total_pence" validate:"omitempty,gt=0"`
	PaymentRef       *string            `json:"payment_ref" validate:"omitempty,max=120"`
	Notes            *string            `json:"notes" validate:"omitempty,max=500"`
}

func toQuoteLines(lines []orderLineRequest) ([]orders.QuoteLineInput, error) {
	out := make([]orders.QuoteLineInput, 0, len(lines))
	for _, line := range lines {
		selections := make(types.AddonSelections, 0, len(line.Addons))
		for _, addon := range line.Addons {
			selections = append(selections, types.AddonSelection{Name: addon.Name, Quantity: addon.Quantity})
		}
		if len(selections) == 0 && len(line.AddonNames) > 0 {
			parsed, err := orders.ParseLegacyAddons(line.AddonNames)
			if err != nil {
				return nil, errors.Wrap(errors.CodeValidation, err, "invalid addon")
			}
			selections = parsed
		}
		out = append(out, orders.QuoteLineInput{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			Addons:     selections,
		})
	}
	return out, nil
}

// QuoteOrder prices a cart without creating anything.
func QuoteOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lines, err := toQuoteLines(req.Lines)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Quote(r.Context(), orders.QuoteInput{Lines: lines})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CreateOrder accepts a new order submission.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lines, err := toQuoteLines(req.Lines)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Create(r.Context(), orders.CreateOrderInput{
			CustomerName:     req.CustomerName,
			Lines:            lines,
			ClientTotalPence: req.ClientTotalPence,
			PaymentRef:       req.PaymentRef,
			Notes:            req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListOrders returns orders, newest first. ?active=true hides completed
// and delivered orders for the kitchen board.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly, err := validators.ParseQueryBool(r, "active", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), orders.ListFilters{ActiveOnly: activeOnly})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetOrder returns a single order with its lines.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
