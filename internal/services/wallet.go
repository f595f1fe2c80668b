package services

import (
	"context"
	"fmt"

	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/repository"
)

const transactionPageSize = 50

// WalletService handles kiss currency and shop business logic
type WalletService struct {
	wallets repository.WalletStore
	outfits repository.OutfitStore
}

// NewWalletService creates a new wallet service
func NewWalletService(wallets repository.WalletStore, outfits repository.OutfitStore) *WalletService {
	return &WalletService{
		wallets: wallets,
		outfits: outfits,
	}
}

// Get retrieves the couple's wallet
func (s *WalletService) Get(ctx context.Context, coupleID string) (*models.KissWallet, error) {
	return s.wallets.GetByCoupleID(ctx, coupleID)
}

// Transactions retrieves the couple's recent ledger entries
func (s *WalletService) Transactions(ctx context.Context, coupleID string) ([]*models.KissTransaction, error) {
	return s.wallets.ListTransactions(ctx, coupleID, transactionPageSize)
}

// Earn looks up the reward table for the reason and credits the
// wallet. A zero-amount reason is a no-op. The returned wallet is
// re-read from the store after the mutation, never computed locally.
func (s *WalletService) Earn(ctx context.Context, coupleID, userID string, reason models.KissReason) (*models.KissWallet, error) {
	amount, ok := models.KissRewards[reason]
	if !ok {
		return nil, fmt.Errorf("unknown kiss reason %q: %w", reason, models.ErrValidation)
	}
	if amount <= 0 {
		return s.wallets.GetByCoupleID(ctx, coupleID)
	}

	if err := s.wallets.Earn(ctx, coupleID, userID, amount, reason); err != nil {
		return nil, err
	}
	return s.wallets.GetByCoupleID(ctx, coupleID)
}

// PurchaseOutfit buys a catalog outfit for the couple. Returns false
// with a sentinel error when the outfit is unknown, already owned, or
// the balance is below the price; no state changes in those cases.
// The debit and the ownership grant commit together or not at all.
func (s *WalletService) PurchaseOutfit(ctx context.Context, coupleID, userID, outfitID string) (bool, error) {
	owned, err := s.outfits.IsOwned(ctx, coupleID, outfitID)
	if err != nil {
		return false, err
	}
	if owned {
		return false, models.ErrAlreadyOwned
	}

	outfit, err := s.outfits.GetByID(ctx, outfitID)
	if err != nil {
		return false, err
	}

	wallet, err := s.wallets.GetByCoupleID(ctx, coupleID)
	if err != nil {
		return false, err
	}
	if wallet.Balance < outfit.Price {
		return false, models.ErrInsufficientBalance
	}

	ok, err := s.wallets.PurchaseOutfit(ctx, coupleID, userID, outfitID, outfit.Price)
	if err != nil {
		return false, err
	}
	if !ok {
		// The conditional debit re-checked the balance inside the
		// transaction and lost to a concurrent spend.
		return false, models.ErrInsufficientBalance
	}
	return true, nil
}

// OwnedOutfits retrieves the couple's owned set
func (s *WalletService) OwnedOutfits(ctx context.Context, coupleID string) ([]*models.OwnedOutfit, error) {
	return s.outfits.ListOwned(ctx, coupleID)
}

// Catalog retrieves the outfit shop catalog
func (s *WalletService) Catalog(ctx context.Context) ([]*models.PetOutfit, error) {
	return s.outfits.ListCatalog(ctx)
}
