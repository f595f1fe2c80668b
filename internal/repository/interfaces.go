package repository

import (
	"context"

	"couple-companion-backend/internal/models"
)

// ProfileStore persists user profiles
type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile, passwordHash string) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, string, error)
	GetPartner(ctx context.Context, coupleID, userID string) (*models.Profile, error)
	UpdatePushToken(ctx context.Context, userID string, pushToken *string) error
}

// CoupleStore persists couples and pairing membership
type CoupleStore interface {
	GetByID(ctx context.Context, id string) (*models.Couple, error)
	GetByPairingCode(ctx context.Context, code string) (*models.Couple, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	CreateWithDefaults(ctx context.Context, couple *models.Couple, creatorID string,
		pet *models.Pet, wallet *models.KissWallet, streak *models.Streak) error
	Join(ctx context.Context, coupleID, userID string) error
}

// PetStore persists a couple's virtual pet
type PetStore interface {
	GetByCoupleID(ctx context.Context, coupleID string) (*models.Pet, error)
	Update(ctx context.Context, pet *models.Pet) error
}

// OutfitStore reads the outfit catalog and a couple's owned set
type OutfitStore interface {
	ListCatalog(ctx context.Context) ([]*models.PetOutfit, error)
	GetByID(ctx context.Context, id string) (*models.PetOutfit, error)
	ListOwned(ctx context.Context, coupleID string) ([]*models.OwnedOutfit, error)
	IsOwned(ctx context.Context, coupleID, outfitID string) (bool, error)
}

// WalletStore persists kiss wallets. Earn and PurchaseOutfit are the
// only balance mutations and each runs as a single transaction with
// SQL-side arithmetic; callers never write a computed balance back.
type WalletStore interface {
	GetByCoupleID(ctx context.Context, coupleID string) (*models.KissWallet, error)
	Earn(ctx context.Context, coupleID, userID string, amount int, reason models.KissReason) error
	PurchaseOutfit(ctx context.Context, coupleID, userID, outfitID string, price int) (bool, error)
	ListTransactions(ctx context.Context, coupleID string, limit int) ([]*models.KissTransaction, error)
}

// StreakStore persists a couple's activity streak
type StreakStore interface {
	GetByCoupleID(ctx context.Context, coupleID string) (*models.Streak, error)
	Update(ctx context.Context, streak *models.Streak) error
}

// CalendarStore persists shared calendar events
type CalendarStore interface {
	ListByCoupleID(ctx context.Context, coupleID string) ([]*models.CalendarEvent, error)
	GetByID(ctx context.Context, id string) (*models.CalendarEvent, error)
	Create(ctx context.Context, event *models.CalendarEvent) error
	Delete(ctx context.Context, id, coupleID string) error
}

// MomentStore persists shared media metadata
type MomentStore interface {
	ListByCoupleID(ctx context.Context, coupleID string, limit, offset int) ([]*models.Moment, error)
	GetByID(ctx context.Context, id string) (*models.Moment, error)
	Create(ctx context.Context, moment *models.Moment) error
	Delete(ctx context.Context, id string) error
}

// NudgeStore persists nudges and their read state
type NudgeStore interface {
	ListRecent(ctx context.Context, coupleID string, limit int) ([]*models.Nudge, error)
	ListUnread(ctx context.Context, receiverID string) ([]*models.Nudge, error)
	Create(ctx context.Context, nudge *models.Nudge) error
	MarkRead(ctx context.Context, id, receiverID string) error
	MarkAllRead(ctx context.Context, receiverID string) error
}

// LocationStore persists last known partner positions
type LocationStore interface {
	Upsert(ctx context.Context, location *models.Location) (*models.Location, error)
	SetSharing(ctx context.Context, userID string, sharing bool) (*models.Location, error)
	ListByCoupleID(ctx context.Context, coupleID string) ([]*models.Location, error)
}
