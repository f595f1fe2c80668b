package repository

import (
	"context"
	"errors"
	"fmt"

	"couple-companion-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PetRepository handles database operations for pets
type PetRepository struct {
	db *pgxpool.Pool
}

// NewPetRepository creates a new pet repository
func NewPetRepository(db *pgxpool.Pool) *PetRepository {
	return &PetRepository{db: db}
}

// GetByCoupleID retrieves the couple's pet
func (r *PetRepository) GetByCoupleID(ctx context.Context, coupleID string) (*models.Pet, error) {
	query := `
		SELECT id, couple_id, name, happiness, hunger, outfit_id,
		       last_fed_at, last_pet_at, created_at, updated_at
		FROM pets
		WHERE couple_id = $1
	`
	var p models.Pet
	err := r.db.QueryRow(ctx, query, coupleID).Scan(
		&p.ID, &p.CoupleID, &p.Name, &p.Happiness, &p.Hunger, &p.OutfitID,
		&p.LastFedAt, &p.LastPetAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("pet for couple %s: %w", coupleID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}
	return &p, nil
}

// Update overwrites the pet's mutable fields
func (r *PetRepository) Update(ctx context.Context, pet *models.Pet) error {
	query := `
		UPDATE pets
		SET name = $1, happiness = $2, hunger = $3, outfit_id = $4,
		    last_fed_at = $5, last_pet_at = $6, updated_at = now()
		WHERE id = $7
	`
	result, err := r.db.Exec(ctx, query,
		pet.Name, pet.Happiness, pet.Hunger, pet.OutfitID,
		pet.LastFedAt, pet.LastPetAt, pet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("pet %s: %w", pet.ID, models.ErrNotFound)
	}
	return nil
}
