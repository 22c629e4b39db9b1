package services

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/repository"
	"github.com/saeid-a/JudoNutritionBack/pkg/utils"
)

const minPasswordLength = 8

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type credentialReader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenRevoker invalidates a token id for the remainder of its lifetime.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type AuthService struct {
	db         txBeginner
	users      credentialReader
	revoker    TokenRevoker
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

type RegisterInput struct {
	Email    string
	Password string
	Role     string
	Name     string

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

type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func NewAuthService(
	db txBeginner,
	users credentialReader,
	revoker TokenRevoker,
	jwtSecret string,
	tokenTTL time.Duration,
	bcryptCost int,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = utils.DefaultTokenTTL
	}
	return &AuthService{
		db:         db,
		users:      users,
		revoker:    revoker,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

func normalizeEmail(raw string) (string, error) {
	parsed, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", invalidf("invalid email format")
	}
	return strings.ToLower(parsed.Address), nil
}

// Register creates the account and its role profile in one transaction.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < minPasswordLength {
		return nil, invalidf("password must be at least %d characters", minPasswordLength)
	}
	if !models.ValidRole(input.Role) {
		return nil, invalidf("role must be athlete or nutritionist")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}
	if err := validateProfileNumbers(input.Age, input.Height, input.TargetWeight, input.ExperienceYears); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         input.Role,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := repository.NewUserRepository(tx).CreateUser(ctx, user); err != nil {
		return nil, storeError(err)
	}

	switch input.Role {
	case models.RoleAthlete:
		_, err = repository.NewAthleteRepository(tx).Create(ctx, user.ID, repository.CreateAthleteInput{
			Name:           name,
			Age:            input.Age,
			Gender:         trimOptional(input.Gender),
			WeightCategory: trimOptional(input.WeightCategory),
			SportLevel:     trimOptional(input.SportLevel),
			HeightCM:       input.Height,
			TargetWeight:   input.TargetWeight,
		})
	case models.RoleNutritionist:
		_, err = repository.NewNutritionistRepository(tx).Create(ctx, user.ID, repository.CreateNutritionistInput{
			Name:            name,
			LicenseNumber:   trimOptional(input.LicenseNumber),
			Specialization:  trimOptional(input.Specialization),
			ExperienceYears: input.ExperienceYears,
		})
	}
	if err != nil {
		return nil, storeError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, invalidf("email and password are required")
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	return s.issue(user)
}

// Logout revokes the presented token until it would have expired. Without a
// revoker it only succeeds; the client discards the token.
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if claims == nil {
		return ErrUnauthenticated
	}
	if s.revoker == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.ID, ttl)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func validateProfileNumbers(age *int, height, targetWeight *float64, experienceYears *int) error {
	if age != nil && (*age <= 0 || *age > 120) {
		return invalidf("age must be between 1 and 120")
	}
	if height != nil && *height <= 0 {
		return invalidf("height must be greater than zero")
	}
	if targetWeight != nil && *targetWeight <= 0 {
		return invalidf("target_weight must be greater than zero")
	}
	if experienceYears != nil && *experienceYears < 0 {
		return invalidf("experience_years cannot be negative")
	}
	return nil
}
