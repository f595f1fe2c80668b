package repository

import (
	"context"
	"errors"
	"fmt"

	"couple-companion-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CoupleRepository handles database operations for couples
type CoupleRepository struct {
	db *pgxpool.Pool
}

// NewCoupleRepository creates a new couple repository
func NewCoupleRepository(db *pgxpool.Pool) *CoupleRepository {
	return &CoupleRepository{db: db}
}

// GetByID retrieves a couple by ID
func (r *CoupleRepository) GetByID(ctx context.Context, id string) (*models.Couple, error) {
	query := `
		SELECT id, pairing_code, anniversary_date, created_at
		FROM couples
		WHERE id = $1
	`
	var c models.Couple
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.PairingCode, &c.AnniversaryDate, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("couple %s: %w", id, models.ErrCoupleNotFound)
		}
		return nil, fmt.Errorf("failed to get couple: %w", err)
	}
	return &c, nil
}

// GetByPairingCode retrieves a couple by its pairing code
func (r *CoupleRepository) GetByPairingCode(ctx context.Context, code string) (*models.Couple, error) {
	query := `
		SELECT id, pairing_code, anniversary_date, created_at
		FROM couples
		WHERE pairing_code = $1
	`
	var c models.Couple
	err := r.db.QueryRow(ctx, query, code).Scan(
		&c.ID, &c.PairingCode, &c.AnniversaryDate, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("pairing code %s: %w", code, models.ErrCoupleNotFound)
		}
		return nil, fmt.Errorf("failed to get couple by code: %w", err)
	}
	return &c, nil
}

// CodeExists checks if a pairing code already exists
func (r *CoupleRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM couples WHERE pairing_code = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check code existence: %w", err)
	}
	return exists, nil
}

// CreateWithDefaults creates a couple together with its pet, wallet and
// streak, and moves the creating profile into it as partner_a. The
// whole bootstrap runs in one transaction so a couple can never exist
// without its dependent rows.
func (r *CoupleRepository) CreateWithDefaults(ctx context.Context, couple *models.Couple, creatorID string,
	pet *models.Pet, wallet *models.KissWallet, streak *models.Streak) error {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO couples (id, pairing_code, anniversary_date, created_at)
		VALUES ($1, $2, $3, $4)
	`, couple.ID, couple.PairingCode, couple.AnniversaryDate, couple.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create couple: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO pets (id, couple_id, name, happiness, hunger, outfit_id, last_fed_at, last_pet_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`, pet.ID, pet.CoupleID, pet.Name, pet.Happiness, pet.Hunger, pet.OutfitID,
		pet.LastFedAt, pet.LastPetAt, pet.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO kiss_wallets (id, couple_id, balance, total_earned, updated_at)
		VALUES ($1, $2, $3, $4, now())
	`, wallet.ID, wallet.CoupleID, wallet.Balance, wallet.TotalEarned)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO streaks (id, couple_id, current_streak, longest_streak, last_active_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, streak.ID, streak.CoupleID, streak.CurrentStreak, streak.LongestStreak, streak.LastActiveDate)
	if err != nil {
		return fmt.Errorf("failed to create streak: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE profiles SET couple_id = $1, role = $2, updated_at = now() WHERE id = $3
	`, couple.ID, models.RolePartnerA, creatorID)
	if err != nil {
		return fmt.Errorf("failed to assign creator profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit couple creation: %w", err)
	}
	return nil
}

// Join assigns a profile to a couple as partner_b. The couple row is
// locked while the member count is checked so two concurrent joins
// cannot both succeed.
func (r *CoupleRepository) Join(ctx context.Context, coupleID, userID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `SELECT id FROM couples WHERE id = $1 FOR UPDATE`, coupleID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("couple %s: %w", coupleID, models.ErrCoupleNotFound)
		}
		return fmt.Errorf("failed to lock couple: %w", err)
	}

	var members int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE couple_id = $1`, coupleID).Scan(&members)
	if err != nil {
		return fmt.Errorf("failed to count couple members: %w", err)
	}
	if members >= 2 {
		return models.ErrCoupleFull
	}

	_, err = tx.Exec(ctx, `
		UPDATE profiles SET couple_id = $1, role = $2, updated_at = now() WHERE id = $3
	`, coupleID, models.RolePartnerB, userID)
	if err != nil {
		return fmt.Errorf("failed to assign joining profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit join: %w", err)
	}
	return nil
}
