package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"couple-companion-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WalletRepository handles database operations for kiss wallets.
// All balance arithmetic happens inside SQL statements in a single
// transaction, so concurrent earns and spends from both partners can
// never lose updates. Callers re-read the wallet after a mutation
// instead of computing the new balance themselves.
type WalletRepository struct {
	db *pgxpool.Pool
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetByCoupleID retrieves a couple's wallet
func (r *WalletRepository) GetByCoupleID(ctx context.Context, coupleID string) (*models.KissWallet, error) {
	query := `
		SELECT id, couple_id, balance, total_earned, updated_at
		FROM kiss_wallets
		WHERE couple_id = $1
	`
	var w models.KissWallet
	err := r.db.QueryRow(ctx, query, coupleID).Scan(
		&w.ID, &w.CoupleID, &w.Balance, &w.TotalEarned, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("wallet for couple %s: %w", coupleID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &w, nil
}

// Earn credits the wallet and records a ledger entry
func (r *WalletRepository) Earn(ctx context.Context, coupleID, userID string, amount int, reason models.KissReason) error {
	if amount <= 0 {
		return fmt.Errorf("earn amount must be positive: %w", models.ErrValidation)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE kiss_wallets
		SET balance = balance + $1, total_earned = total_earned + $1, updated_at = now()
		WHERE couple_id = $2
	`, amount, coupleID)
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("wallet for couple %s: %w", coupleID, models.ErrNotFound)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO kiss_transactions (id, couple_id, user_id, amount, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New().String(), coupleID, userID, amount, string(reason), time.Now())
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit earn: %w", err)
	}
	return nil
}

// PurchaseOutfit atomically debits the wallet and grants ownership.
// Returns false without any state change when the balance is too low
// or the outfit is already owned. The debit is conditional on the
// balance inside the UPDATE, so a concurrent spend from the partner's
// device cannot drive the balance negative.
func (r *WalletRepository) PurchaseOutfit(ctx context.Context, coupleID, userID, outfitID string, price int) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if price > 0 {
		result, err := tx.Exec(ctx, `
			UPDATE kiss_wallets
			SET balance = balance - $1, updated_at = now()
			WHERE couple_id = $2 AND balance >= $1
		`, price, coupleID)
		if err != nil {
			return false, fmt.Errorf("failed to debit wallet: %w", err)
		}
		if result.RowsAffected() == 0 {
			return false, nil
		}
	}

	result, err := tx.Exec(ctx, `
		INSERT INTO owned_outfits (id, couple_id, outfit_id, purchased_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (couple_id, outfit_id) DO NOTHING
	`, uuid.New().String(), coupleID, outfitID)
	if err != nil {
		return false, fmt.Errorf("failed to record ownership: %w", err)
	}
	if result.RowsAffected() == 0 {
		// Lost a race with the partner buying the same outfit;
		// rolling back also undoes the debit.
		return false, nil
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO kiss_transactions (id, couple_id, user_id, amount, reason, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.New().String(), coupleID, userID, -price, string(models.ReasonPurchaseOutfit), outfitID, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit purchase: %w", err)
	}
	return true, nil
}

// ListTransactions retrieves the couple's most recent ledger entries
func (r *WalletRepository) ListTransactions(ctx context.Context, coupleID string, limit int) ([]*models.KissTransaction, error) {
	query := `
		SELECT id, couple_id, user_id, amount, reason, reference_id, created_at
		FROM kiss_transactions
		WHERE couple_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, coupleID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*models.KissTransaction
	for rows.Next() {
		var t models.KissTransaction
		err := rows.Scan(&t.ID, &t.CoupleID, &t.UserID, &t.Amount, &t.Reason, &t.ReferenceID, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txs, nil
}
