package models

import "time"

type AthleteProfile struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	Age            *int      `json:"age"`
	Gender         *string   `json:"gender"`
	WeightCategory *string   `json:"weight_category"`
	SportLevel     *string   `json:"sport_level"`
	HeightCM       *float64  `json:"height"`
	TargetWeight   *float64  `json:"target_weight"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type NutritionistProfile struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Name            string    `json:"name"`
	LicenseNumber   *string   `json:"license_number"`
	Specialization  *string   `json:"specialization"`
	ExperienceYears *int      `json:"experience_years"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AthleteSummary is one row of the nutritionist's athlete list.
type AthleteSummary struct {
	AthleteProfile
	Email         string     `json:"email"`
	CurrentWeight *float64   `json:"current_weight"`
	LastWeighIn   *time.Time `json:"last_weigh_in"`
}
