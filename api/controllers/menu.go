package controllers

import (
	"net/http"

	"github.com/acedk/steakout-backend/api/responses"
	"github.com/acedk/steakout-backend/api/validators"
	"github.com/acedk/steakout-backend/internal/catalog"
	"github.com/acedk/steakout-backend/pkg/logger"
)

// ListMenu returns the menu ordered for display.
func ListMenu(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Menu(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// GetMenuItem returns a single menu item by id.
func GetMenuItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.MenuItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
