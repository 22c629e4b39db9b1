package repository

import (
	"context"
	"time"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, role, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_token_hash = $1,
			reset_token_expires_at = $2,
			updated_at = NOW()
		WHERE id = $3
	`, tokenHash, expiresAt, userID)
	return err
}

// ResetPassword swaps the password for the user holding an unexpired token
// and clears the token in the same statement. It returns pgx.ErrNoRows when
// no user matches.
func (r *UserRepository) ResetPassword(ctx context.Context, tokenHash, passwordHash string) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET password_hash = $1,
			reset_token_hash = NULL,
			reset_token_expires_at = NULL,
			updated_at = NOW()
		WHERE reset_token_hash = $2
		  AND reset_token_expires_at > NOW()
		RETURNING id
	`, passwordHash, tokenHash).Scan(&userID)
	return userID, err
}
