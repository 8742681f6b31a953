package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acedk/steakout-backend/internal/orders"
	"github.com/acedk/steakout-backend/internal/pricing"
	"github.com/acedk/steakout-backend/pkg/db/models"
	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/acedk/steakout-backend/pkg/errors"
	"github.com/acedk/steakout-backend/pkg/logger"
)

type fakeOrderService struct {
	quote      *orders.QuoteResult
	quoteErr   error
	created    *models.Order
	createErr  error
	lastCreate orders.CreateOrderInput
	lastQuote  orders.QuoteInput
}

func (f *fakeOrderService) Quote(_ context.Context, input orders.QuoteInput) (*orders.QuoteResult, error) {
	f.lastQuote = input
	return f.quote, f.quoteErr
}

func (f *fakeOrderService) Create(_ context.Context, input orders.CreateOrderInput) (*models.Order, error) {
	f.lastCreate = input
	return f.created, f.createErr
}

func (f *fakeOrderService) Get(context.Context, uuid.UUID) (*models.Order, error) {
	return nil, errors.New(errors.CodeNotFound, "order not found")
}

func (f *fakeOrderService) List(context.Context, orders.ListFilters) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) Update(context.Context, uuid.UUID, orders.UpdateOrderInput) (*models.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) UpdateStatus(context.Context, uuid.UUID, enums.OrderStatus) (*models.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) Delete(context.Context, uuid.UUID) error {
	return nil
}

func discardLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestQuoteOrderReturnsServerTotal(t *testing.T) {
	itemID := uuid.New()
	svc := &fakeOrderService{
		quote: &orders.QuoteResult{
			Lines: []pricing.PricedLine{{
				MenuItemID:     itemID,
				Name:           "Steak & Fries",
				UnitPricePence: 1200,
				LineTotalPence: 1200,
			}},
			TotalPence: 1200,
		},
	}

	body := map[string]any{
		"lines": []map[string]any{{
			"menu_item_id": itemID.String(),
			"quantity":     1,
		}},
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	QuoteOrder(svc, discardLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_pence":1200`)
	require.Len(t, svc.lastQuote.Lines, 1)
	assert.Equal(t, itemID, svc.lastQuote.Lines[0].MenuItemID)
}

func TestQuoteOrderRejectsEmptyCart(t *testing.T) {
	svc := &fakeOrderService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote", bytes.NewBufferString(`{"lines":[]}`))
	rec := httptest.NewRecorder()
	QuoteOrder(svc, discardLogger())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestQuoteOrderRejectsUnknownFields(t *testing.T) {
	svc := &fakeOrderService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote",
		bytes.NewBufferString(`{"lines":[{"menu_item_id":"`+uuid.NewString()+`","quantity":1}],"surprise":true}`))
	rec := httptest.NewRecorder()
	QuoteOrder(svc, discardLogger())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderParsesLegacyAddonStrings(t *testing.T) {
	itemID := uuid.New()
	svc := &fakeOrderService{
		created: &models.Order{ID: uuid.New(), DisplayID: "#001", Status: enums.OrderStatusPending},
	}

	body := `{
		"customer_name": "Dana",
		"lines": [{
			"menu_item_id": "` + itemID.String() + `",
			"quantity": 1,
			"addon_names": ["Lamb x2", "Mayo"]
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	CreateOrder(svc, discardLogger())(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.lastCreate.Lines, 1)
	addons := svc.lastCreate.Lines[0].Addons
	require.Len(t, addons, 2)
	assert.Equal(t, "Lamb", addons[0].Name)
	assert.Equal(t, 2, addons[0].Quantity)
	assert.Equal(t, "Mayo", addons[1].Name)
	assert.Equal(t, 1, addons[1].Quantity)
}

func TestCreateOrderSurfacesStoreClosed(t *testing.T) {
	itemID := uuid.New()
	svc := &fakeOrderService{
		createErr: errors.New(errors.CodeStoreClosed, "orders are not being accepted right now"),
	}

	body := `{"customer_name":"Dana","lines":[{"menu_item_id":"` + itemID.String() + `","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	CreateOrder(svc, discardLogger())(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "STORE_CLOSED")
}
