package services

import (
	"context"
	"strings"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/repository"
)

type AthleteProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.AthleteProfile, error)
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateAthleteInput) (*models.AthleteProfile, error)
}

type NutritionistProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.NutritionistProfile, error)
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateNutritionistInput) (*models.NutritionistProfile, error)
}

type ProfileService struct {
	users         userReader
	athletes      AthleteProfileStore
	nutritionists NutritionistProfileStore
}

type Profile struct {
	User         *models.User                `json:"user"`
	Athlete      *models.AthleteProfile      `json:"athlete,omitempty"`
	Nutritionist *models.NutritionistProfile `json:"nutritionist,omitempty"`
}

type UpdateProfileInput struct {
	Name *string

	Age            *int
	Gender         *string
	WeightCategory *string
	SportLevel     *string
	Height         *float64
	TargetWeight   *float64

	LicenseNumber   *string
	Specialization  *string
	ExperienceYears *int
}

func NewProfileService(users userReader, athletes AthleteProfileStore, nutritionists NutritionistProfileStore) *ProfileService {
	return &ProfileService{
		users:         users,
		athletes:      athletes,
		nutritionists: nutritionists,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	profile := &Profile{User: user}
	switch user.Role {
	case models.RoleAthlete:
		profile.Athlete, err = s.athletes.GetByUserID(ctx, userID)
	case models.RoleNutritionist:
		profile.Nutritionist, err = s.nutritionists.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, storeError(err)
	}
	return profile, nil
}

// Update changes only the fields present in input on the caller's role
// profile. Fields belonging to the other role are ignored.
func (s *ProfileService) Update(ctx context.Context, userID int64, role string, input UpdateProfileInput) (*Profile, error) {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, invalidf("name cannot be empty")
		}
		input.Name = &trimmed
	}
	if err := validateProfileNumbers(input.Age, input.Height, input.TargetWeight, input.ExperienceYears); err != nil {
		return nil, err
	}

	switch role {
	case models.RoleAthlete:
		if _, err := s.athletes.UpdatePartial(ctx, userID, repository.UpdateAthleteInput{
			Name:           input.Name,
			Age:            input.Age,
			Gender:         trimOptional(input.Gender),
			WeightCategory: trimOptional(input.WeightCategory),
			SportLevel:     trimOptional(input.SportLevel),
			HeightCM:       input.Height,
			TargetWeight:   input.TargetWeight,
		}); err != nil {
			return nil, storeError(err)
		}
	case models.RoleNutritionist:
		if _, err := s.nutritionists.UpdatePartial(ctx, userID, repository.UpdateNutritionistInput{
			Name:            input.Name,
			LicenseNumber:   trimOptional(input.LicenseNumber),
			Specialization:  trimOptional(input.Specialization),
			ExperienceYears: input.ExperienceYears,
		}); err != nil {
			return nil, storeError(err)
		}
	default:
		return nil, ErrForbidden
	}

	return s.Get(ctx, userID)
}
