package models

import "time"

// Profile roles within a couple.
const (
	RolePartnerA = "partner_a"
	RolePartnerB = "partner_b"
	RolePending  = "pending"
)

// Profile represents a registered user
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	CoupleID    *string   `json:"couple_id,omitempty"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	Role        string    `json:"role"`
	PushToken   *string   `json:"push_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Couple represents a paired-partner relationship
type Couple struct {
	ID              string    `json:"id"`
	PairingCode     string    `json:"pairing_code"`
	AnniversaryDate time.Time `json:"anniversary_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// Pet represents a couple's virtual pet
type Pet struct {
	ID        string    `json:"id"`
	CoupleID  string    `json:"couple_id"`
	Name      string    `json:"name"`
	Happiness int       `json:"happiness"`
	Hunger    int       `json:"hunger"`
	OutfitID  string    `json:"outfit_id"`
	LastFedAt time.Time `json:"last_fed_at"`
	LastPetAt time.Time `json:"last_pet_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Outfit categories and rarities.
const (
	CategoryHat       = "hat"
	CategoryShirt     = "shirt"
	CategoryAccessory = "accessory"
	CategoryFull      = "full"

	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityLegendary = "legendary"
)

// PetOutfit is an immutable catalog entry
type PetOutfit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	ImageKey    string `json:"image_key"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
}

// OwnedOutfit records a couple's purchase of an outfit
type OwnedOutfit struct {
	ID          string    `json:"id"`
	CoupleID    string    `json:"couple_id"`
	OutfitID    string    `json:"outfit_id"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// KissWallet holds a couple's spendable balance and lifetime total
type KissWallet struct {
	ID          string    `json:"id"`
	CoupleID    string    `json:"couple_id"`
	Balance     int       `json:"balance"`
	TotalEarned int       `json:"total_earned"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// KissTransaction is a ledger entry for an earn or spend
type KissTransaction struct {
	ID          string    `json:"id"`
	CoupleID    string    `json:"couple_id"`
	UserID      *string   `json:"user_id,omitempty"`
	Amount      int       `json:"amount"`
	Reason      string    `json:"reason"`
	ReferenceID *string   `json:"reference_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Streak tracks consecutive active calendar days for a couple
type Streak struct {
	ID             string     `json:"id"`
	CoupleID       string     `json:"couple_id"`
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CalendarEvent belongs to a couple's shared calendar
type CalendarEvent struct {
	ID          string    `json:"id"`
	CoupleID    string    `json:"couple_id"`
	AuthorID    *string   `json:"author_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	EventTime   *string   `json:"event_time,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// Media types for moments.
const (
	MediaImage = "image"
	MediaVideo = "video"
	MediaGIF   = "gif"
	MediaRaw   = "raw"
)

// Moment is a shared media post
type Moment struct {
	ID            string    `json:"id"`
	CoupleID      string    `json:"couple_id"`
	AuthorID      string    `json:"author_id"`
	MediaURL      string    `json:"media_url"`
	MediaType     string    `json:"media_type"`
	MimeType      string    `json:"mime_type"`
	ThumbnailURL  *string   `json:"thumbnail_url,omitempty"`
	Caption       string    `json:"caption"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	CreatedAt     time.Time `json:"created_at"`
}

// Nudge is a vibration pattern message between partners.
// Even pattern indices are vibrate segments, odd ones are pauses,
// all in milliseconds.
type Nudge struct {
	ID          string    `json:"id"`
	CoupleID    string    `json:"couple_id"`
	SenderID    string    `json:"sender_id"`
	ReceiverID  string    `json:"receiver_id"`
	Pattern     []int32   `json:"pattern"`
	PatternName string    `json:"pattern_name"`
	Emoji       string    `json:"emoji"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Location is a partner's last reported position
type Location struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CoupleID  string    `json:"couple_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	IsSharing bool      `json:"is_sharing"`
	UpdatedAt time.Time `json:"updated_at"`
}
