package services

import (
	"context"
	"strings"
	"time"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
)

type athleteReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.AthleteProfile, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

func resolveAthlete(ctx context.Context, athletes athleteReader, userID int64) (*models.AthleteProfile, error) {
	athlete, err := athletes.GetByUserID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return athlete, nil
}

// parseOptionalDate returns nil for a blank value.
func parseOptionalDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	date, err := models.ParseDate(value)
	if err != nil {
		return nil, invalidf("%s must be a date formatted as YYYY-MM-DD", field)
	}
	t := date.Time
	return &t, nil
}

func startOfDay(t time.Time) time.Time {
	return models.NewDate(t).Time
}

// trimOptional trims s and turns blank strings into nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
