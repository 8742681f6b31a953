package controllers

import (
	"net/http"

	"github.com/acedk/steakout-backend/api/responses"
	"github.com/acedk/steakout-backend/api/validators"
	"github.com/acedk/steakout-backend/internal/settings"
	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/acedk/steakout-backend/pkg/errors"
	"github.com/acedk/steakout-backend/pkg/logger"
	"github.com/acedk/steakout-backend/pkg/types"
)

type updateSettingsRequest struct {
	ScheduleOverride *string            `json:"schedule_override" validate:"omitempty"`
	OpeningTimes     types.OpeningTimes `json:"opening_times" validate:"omitempty"`
}

// GetSettings returns the store configuration.
func GetSettings(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, current)
	}
}

// UpdateSettings changes the schedule override or weekly opening times.
func UpdateSettings(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := settings.UpdateSettingsInput{OpeningTimes: req.OpeningTimes}
		if req.ScheduleOverride != nil {
			parsed, err := enums.ParseScheduleOverride(*req.ScheduleOverride)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, errors.Wrap(errors.CodeValidation, err, "invalid schedule override"))
				return
			}
			input.ScheduleOverride = &parsed
		}

		updated, err := svc.Update(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
