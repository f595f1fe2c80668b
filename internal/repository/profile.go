package repository

import (
	"context"
	"errors"
	"fmt"

	"couple-companion-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, email, couple_id, display_name, avatar_url, role, push_token, created_at, updated_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.CoupleID, &p.DisplayName, &p.AvatarURL,
		&p.Role, &p.PushToken, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile, passwordHash string) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, display_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`
	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.Email, passwordHash, profile.DisplayName, profile.Role, profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// GetByEmail retrieves a profile and its password hash by email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, string, error) {
	query := `
		SELECT id, email, couple_id, display_name, avatar_url, role, push_token,
		       created_at, updated_at, password_hash
		FROM profiles
		WHERE email = $1
	`
	var p models.Profile
	var hash string
	err := r.db.QueryRow(ctx, query, email).Scan(
		&p.ID, &p.Email, &p.CoupleID, &p.DisplayName, &p.AvatarURL,
		&p.Role, &p.PushToken, &p.CreatedAt, &p.UpdatedAt, &hash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", fmt.Errorf("profile for %s: %w", email, models.ErrNotFound)
		}
		return nil, "", fmt.Errorf("failed to get profile by email: %w", err)
	}
	return &p, hash, nil
}

// GetPartner retrieves the other profile referencing the same couple
func (r *ProfileRepository) GetPartner(ctx context.Context, coupleID, userID string) (*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE couple_id = $1 AND id <> $2
		LIMIT 1
	`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, coupleID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("partner: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get partner profile: %w", err)
	}
	return profile, nil
}

// UpdatePushToken updates the push token for a profile
func (r *ProfileRepository) UpdatePushToken(ctx context.Context, userID string, pushToken *string) error {
	query := `UPDATE profiles SET push_token = $1, updated_at = now() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, pushToken, userID)
	if err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}
	return nil
}
