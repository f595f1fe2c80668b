package repository

import (
	"context"
	"errors"
	"fmt"

	"couple-companion-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OutfitRepository reads the outfit catalog and owned-outfit records
type OutfitRepository struct {
	db *pgxpool.Pool
}

// NewOutfitRepository creates a new outfit repository
func NewOutfitRepository(db *pgxpool.Pool) *OutfitRepository {
	return &OutfitRepository{db: db}
}

// ListCatalog retrieves all catalog outfits ordered by price
func (r *OutfitRepository) ListCatalog(ctx context.Context) ([]*models.PetOutfit, error) {
	query := `
		SELECT id, name, description, price, image_key, category, rarity
		FROM pet_outfits
		ORDER BY price ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list outfits: %w", err)
	}
	defer rows.Close()

	var outfits []*models.PetOutfit
	for rows.Next() {
		var o models.PetOutfit
		err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.Price, &o.ImageKey, &o.Category, &o.Rarity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outfit: %w", err)
		}
		outfits = append(outfits, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outfits: %w", err)
	}
	return outfits, nil
}

// GetByID retrieves a catalog outfit by ID
func (r *OutfitRepository) GetByID(ctx context.Context, id string) (*models.PetOutfit, error) {
	query := `
		SELECT id, name, description, price, image_key, category, rarity
		FROM pet_outfits
		WHERE id = $1
	`
	var o models.PetOutfit
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.Description, &o.Price, &o.ImageKey, &o.Category, &o.Rarity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("outfit %s: %w", id, models.ErrOutfitNotFound)
		}
		return nil, fmt.Errorf("failed to get outfit: %w", err)
	}
	return &o, nil
}

// ListOwned retrieves the couple's owned outfits
func (r *OutfitRepository) ListOwned(ctx context.Context, coupleID string) ([]*models.OwnedOutfit, error) {
	query := `
		SELECT id, couple_id, outfit_id, purchased_at
		FROM owned_outfits
		WHERE couple_id = $1
		ORDER BY purchased_at ASC
	`
	rows, err := r.db.Query(ctx, query, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned outfits: %w", err)
	}
	defer rows.Close()

	var owned []*models.OwnedOutfit
	for rows.Next() {
		var o models.OwnedOutfit
		err := rows.Scan(&o.ID, &o.CoupleID, &o.OutfitID, &o.PurchasedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan owned outfit: %w", err)
		}
		owned = append(owned, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating owned outfits: %w", err)
	}
	return owned, nil
}

// IsOwned checks whether a couple owns an outfit
func (r *OutfitRepository) IsOwned(ctx context.Context, coupleID, outfitID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM owned_outfits WHERE couple_id = $1 AND outfit_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, coupleID, outfitID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check outfit ownership: %w", err)
	}
	return exists, nil
}
