package services

import (
	"context"

	"couple-companion-backend/internal/models"
)

// Func-field mocks for the repository interfaces. Tests fill in only
// the calls they expect.

type mockProfileStore struct {
	createFn          func(ctx context.Context, profile *models.Profile, passwordHash string) error
	getByIDFn         func(ctx context.Context, id string) (*models.Profile, error)
	getByEmailFn      func(ctx context.Context, email string) (*models.Profile, string, error)
	getPartnerFn      func(ctx context.Context, coupleID, userID string) (*models.Profile, error)
	updatePushTokenFn func(ctx context.Context, userID string, pushToken *string) error
}

func (m *mockProfileStore) Create(ctx context.Context, profile *models.Profile, passwordHash string) error {
	if m.createFn != nil {
		return m.createFn(ctx, profile, passwordHash)
	}
	return nil
}

func (m *mockProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *mockProfileStore) GetByEmail(ctx context.Context, email string) (*models.Profile, string, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, "", models.ErrNotFound
}

func (m *mockProfileStore) GetPartner(ctx context.Context, coupleID, userID string) (*models.Profile, error) {
	if m.getPartnerFn != nil {
		return m.getPartnerFn(ctx, coupleID, userID)
	}
	return nil, models.ErrNotFound
}

func (m *mockProfileStore) UpdatePushToken(ctx context.Context, userID string, pushToken *string) error {
	if m.updatePushTokenFn != nil {
		return m.updatePushTokenFn(ctx, userID, pushToken)
	}
	return nil
}

type mockCoupleStore struct {
	getByIDFn            func(ctx context.Context, id string) (*models.Couple, error)
	getByPairingCodeFn   func(ctx context.Context, code string) (*models.Couple, error)
	codeExistsFn         func(ctx context.Context, code string) (bool, error)
	createWithDefaultsFn func(ctx context.Context, couple *models.Couple, creatorID string,
		pet *models.Pet, wallet *models.KissWallet, streak *models.Streak) error
	joinFn func(ctx context.Context, coupleID, userID string) error
}

func (m *mockCoupleStore) GetByID(ctx context.Context, id string) (*models.Couple, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *mockCoupleStore) GetByPairingCode(ctx context.Context, code string) (*models.Couple, error) {
	if m.getByPairingCodeFn != nil {
		return m.getByPairingCodeFn(ctx, code)
	}
	return nil, models.ErrCoupleNotFound
}

func (m *mockCoupleStore) CodeExists(ctx context.Context, code string) (bool, error) {
	if m.codeExistsFn != nil {
		return m.codeExistsFn(ctx, code)
	}
	return false, nil
}

func (m *mockCoupleStore) CreateWithDefaults(ctx context.Context, couple *models.Couple, creatorID string,
	pet *models.Pet, wallet *models.KissWallet, streak *models.Streak) error {
	if m.createWithDefaultsFn != nil {
		return m.createWithDefaultsFn(ctx, couple, creatorID, pet, wallet, streak)
	}
	return nil
}

func (m *mockCoupleStore) Join(ctx context.Context, coupleID, userID string) error {
	if m.joinFn != nil {
		return m.joinFn(ctx, coupleID, userID)
	}
	return nil
}

type mockPetStore struct {
	getByCoupleIDFn func(ctx context.Context, coupleID string) (*models.Pet, error)
	updateFn        func(ctx context.Context, pet *models.Pet) error
}

func (m *mockPetStore) GetByCoupleID(ctx context.Context, coupleID string) (*models.Pet, error) {
	if m.getByCoupleIDFn != nil {
		return m.getByCoupleIDFn(ctx, coupleID)
	}
	return nil, models.ErrNotFound
}

func (m *mockPetStore) Update(ctx context.Context, pet *models.Pet) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, pet)
	}
	return nil
}

type mockOutfitStore struct {
	listCatalogFn func(ctx context.Context) ([]*models.PetOutfit, error)
	getByIDFn     func(ctx context.Context, id string) (*models.PetOutfit, error)
	listOwnedFn   func(ctx context.Context, coupleID string) ([]*models.OwnedOutfit, error)
	isOwnedFn     func(ctx context.Context, coupleID, outfitID string) (bool, error)
}

func (m *mockOutfitStore) ListCatalog(ctx context.Context) ([]*models.PetOutfit, error) {
	if m.listCatalogFn != nil {
		return m.listCatalogFn(ctx)
	}
	return nil, nil
}

func (m *mockOutfitStore) GetByID(ctx context.Context, id string) (*models.PetOutfit, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, models.ErrOutfitNotFound
}

func (m *mockOutfitStore) ListOwned(ctx context.Context, coupleID string) ([]*models.OwnedOutfit, error) {
	if m.listOwnedFn != nil {
		return m.listOwnedFn(ctx, coupleID)
	}
	return nil, nil
}

func (m *mockOutfitStore) IsOwned(ctx context.Context, coupleID, outfitID string) (bool, error) {
	if m.isOwnedFn != nil {
		return m.isOwnedFn(ctx, coupleID, outfitID)
	}
	return false, nil
}

type mockWalletStore struct {
	getByCoupleIDFn    func(ctx context.Context, coupleID string) (*models.KissWallet, error)
	earnFn             func(ctx context.Context, coupleID, userID string, amount int, reason models.KissReason) error
	purchaseOutfitFn   func(ctx context.Context, coupleID, userID, outfitID string, price int) (bool, error)
	listTransactionsFn func(ctx context.Context, coupleID string, limit int) ([]*models.KissTransaction, error)
}

func (m *mockWalletStore) GetByCoupleID(ctx context.Context, coupleID string) (*models.KissWallet, error) {
	if m.getByCoupleIDFn != nil {
		return m.getByCoupleIDFn(ctx, coupleID)
	}
	return nil, models.ErrNotFound
}

func (m *mockWalletStore) Earn(ctx context.Context, coupleID, userID string, amount int, reason models.KissReason) error {
	if m.earnFn != nil {
		return m.earnFn(ctx, coupleID, userID, amount, reason)
	}
	return nil
}

func (m *mockWalletStore) PurchaseOutfit(ctx context.Context, coupleID, userID, outfitID string, price int) (bool, error) {
	if m.purchaseOutfitFn != nil {
		return m.purchaseOutfitFn(ctx, coupleID, userID, outfitID, price)
	}
	return true, nil
}

func (m *mockWalletStore) ListTransactions(ctx context.Context, coupleID string, limit int) ([]*models.KissTransaction, error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(ctx, coupleID, limit)
	}
	return nil, nil
}

type mockStreakStore struct {
	getByCoupleIDFn func(ctx context.Context, coupleID string) (*models.Streak, error)
	updateFn        func(ctx context.Context, streak *models.Streak) error
}

func (m *mockStreakStore) GetByCoupleID(ctx context.Context, coupleID string) (*models.Streak, error) {
	if m.getByCoupleIDFn != nil {
		return m.getByCoupleIDFn(ctx, coupleID)
	}
	return nil, models.ErrNotFound
}

func (m *mockStreakStore) Update(ctx context.Context, streak *models.Streak) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, streak)
	}
	return nil
}

type mockNudgeStore struct {
	listRecentFn  func(ctx context.Context, coupleID string, limit int) ([]*models.Nudge, error)
	listUnreadFn  func(ctx context.Context, receiverID string) ([]*models.Nudge, error)
	createFn      func(ctx context.Context, nudge *models.Nudge) error
	markReadFn    func(ctx context.Context, id, receiverID string) error
	markAllReadFn func(ctx context.Context, receiverID string) error
}

func (m *mockNudgeStore) ListRecent(ctx context.Context, coupleID string, limit int) ([]*models.Nudge, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, coupleID, limit)
	}
	return nil, nil
}

func (m *mockNudgeStore) ListUnread(ctx context.Context, receiverID string) ([]*models.Nudge, error) {
	if m.listUnreadFn != nil {
		return m.listUnreadFn(ctx, receiverID)
	}
	return nil, nil
}

func (m *mockNudgeStore) Create(ctx context.Context, nudge *models.Nudge) error {
	if m.createFn != nil {
		return m.createFn(ctx, nudge)
	}
	return nil
}

func (m *mockNudgeStore) MarkRead(ctx context.Context, id, receiverID string) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, id, receiverID)
	}
	return nil
}

func (m *mockNudgeStore) MarkAllRead(ctx context.Context, receiverID string) error {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, receiverID)
	}
	return nil
}

type mockMomentStore struct {
	listByCoupleIDFn func(ctx context.Context, coupleID string, limit, offset int) ([]*models.Moment, error)
	getByIDFn        func(ctx context.Context, id string) (*models.Moment, error)
	createFn         func(ctx context.Context, moment *models.Moment) error
	deleteFn         func(ctx context.Context, id string) error
}

func (m *mockMomentStore) ListByCoupleID(ctx context.Context, coupleID string, limit, offset int) ([]*models.Moment, error) {
	if m.listByCoupleIDFn != nil {
		return m.listByCoupleIDFn(ctx, coupleID, limit, offset)
	}
	return nil, nil
}

func (m *mockMomentStore) GetByID(ctx context.Context, id string) (*models.Moment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *mockMomentStore) Create(ctx context.Context, moment *models.Moment) error {
	if m.createFn != nil {
		return m.createFn(ctx, moment)
	}
	return nil
}

func (m *mockMomentStore) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockLocationStore struct {
	upsertFn         func(ctx context.Context, location *models.Location) (*models.Location, error)
	setSharingFn     func(ctx context.Context, userID string, sharing bool) (*models.Location, error)
	listByCoupleIDFn func(ctx context.Context, coupleID string) ([]*models.Location, error)
}

func (m *mockLocationStore) Upsert(ctx context.Context, location *models.Location) (*models.Location, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, location)
	}
	return location, nil
}

func (m *mockLocationStore) SetSharing(ctx context.Context, userID string, sharing bool) (*models.Location, error) {
	if m.setSharingFn != nil {
		return m.setSharingFn(ctx, userID, sharing)
	}
	return nil, models.ErrNotFound
}

func (m *mockLocationStore) ListByCoupleID(ctx context.Context, coupleID string) ([]*models.Location, error) {
	if m.listByCoupleIDFn != nil {
		return m.listByCoupleIDFn(ctx, coupleID)
	}
	return nil, nil
}

type mockObjectStorage struct {
	putFn        func(ctx context.Context, key, contentType string, data []byte) (string, error)
	deleteFn     func(ctx context.Context, key string) error
	keyFromURLFn func(url string) (string, bool)
}

func (m *mockObjectStorage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if m.putFn != nil {
		return m.putFn(ctx, key, contentType, data)
	}
	return "https://media.test/" + key, nil
}

func (m *mockObjectStorage) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockObjectStorage) KeyFromURL(url string) (string, bool) {
	if m.keyFromURLFn != nil {
		return m.keyFromURLFn(url)
	}
	return "", false
}
