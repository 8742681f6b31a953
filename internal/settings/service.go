package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/acedk/steakout-backend/pkg/db/models"
	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/acedk/steakout-backend/pkg/errors"
	"github.com/acedk/steakout-backend/pkg/types"
	"github.com/google/uuid"
)

// Service exposes store configuration and the open/closed decision used
// to gate order intake.
type Service interface {
	Get(ctx context.Context) (*models.StoreSettings, error)
	Update(ctx context.Context, input UpdateSettingsInput) (*models.StoreSettings, error)
	IsOpenAt(ctx context.Context, at time.Time) (bool, error)
}

// UpdateSettingsInput carries an admin settings change. Nil fields are
// left untouched.
type UpdateSettingsInput struct {
	ScheduleOverride *enums.ScheduleOverride
	OpeningTimes     types.OpeningTimes
}

type service struct {
	repo Repository
}

// NewService wires a settings service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context) (*models.StoreSettings, error) {
	return s.repo.Get(ctx)
}

func (s *service) Update(ctx context.Context, input UpdateSettingsInput) (*models.StoreSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if typed := errors.As(err); typed != nil && typed.Code() == errors.CodeNotFound {
			settings = &models.StoreSettings{
				ID:               uuid.New(),
				ScheduleOverride: enums.ScheduleOverrideNone,
			}
		} else {
			return nil, err
		}
	}

	if input.ScheduleOverride != nil {
		if !input.ScheduleOverride.IsValid() {
			return nil, errors.New(errors.CodeValidation,
				fmt.Sprintf("invalid schedule override %q", *input.ScheduleOverride))
		}
		settings.ScheduleOverride = *input.ScheduleOverride
	}
	if input.OpeningTimes != nil {
		if err := validateOpeningTimes(input.OpeningTimes); err != nil {
			return nil, err
		}
		settings.OpeningTimes = input.OpeningTimes
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// IsOpenAt decides whether the store accepts orders at the given time.
// A manual override beats the weekly schedule. Days without a schedule
// entry are closed.
func (s *service) IsOpenAt(ctx context.Context, at time.Time) (bool, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if typed := errors.As(err); typed != nil && typed.Code() == errors.CodeNotFound {
			return false, nil
		}
		return false, err
	}

	switch settings.ScheduleOverride {
	case enums.ScheduleOverrideForceOpen:
		return true, nil
	case enums.ScheduleOverrideForceClosed:
		return false, nil
	}

	day := strings.ToLower(at.Weekday().String())
	schedule, ok := settings.OpeningTimes[day]
	if !ok || schedule.Closed {
		return false, nil
	}

	open, err := minutesOfDay(schedule.Open)
	if err != nil {
		return false, errors.Wrap(errors.CodeInternal, err, "parsing opening time")
	}
	close, err := minutesOfDay(schedule.Close)
	if err != nil {
		return false, errors.Wrap(errors.CodeInternal, err, "parsing closing time")
	}

	now := at.Hour()*60 + at.Minute()
	return now >= open && now < close, nil
}

func validateOpeningTimes(times types.OpeningTimes) error {
	for day, schedule := range times {
		if !validDay(day) {
			return errors.New(errors.CodeValidation, fmt.Sprintf("unknown day %q", day))
		}
		if schedule.Closed {
			continue
		}
		open, err := minutesOfDay(schedule.Open)
		if err != nil {
			return errors.New(errors.CodeValidation, fmt.Sprintf("invalid open time for %s", day))
		}
		close, err := minutesOfDay(schedule.Close)
		if err != nil {
			return errors.New(errors.CodeValidation, fmt.Sprintf("invalid close time for %s", day))
		}
		if close <= open {
			return errors.New(errors.CodeValidation, fmt.Sprintf("close must be after open for %s", day))
		}
	}
	return nil
}

func validDay(day string) bool {
	switch day {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}

func minutesOfDay(value string) (int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}
