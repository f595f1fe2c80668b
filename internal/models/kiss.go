package models

// KissReason identifies what a wallet mutation was for
type KissReason string

const (
	ReasonDailyLogin     KissReason = "daily_login"
	ReasonSendKiss       KissReason = "send_kiss"
	ReasonUploadMoment   KissReason = "upload_moment"
	ReasonFeedPet        KissReason = "feed_pet"
	ReasonPetPet         KissReason = "pet_pet"
	ReasonStreakBonus    KissReason = "streak_bonus"
	ReasonPurchaseOutfit KissReason = "purchase_outfit"
	ReasonCalendarEvent  KissReason = "calendar_event"
)

// KissRewards maps each reason to the amount granted. A zero amount
// means the earn operation is a no-op for that reason.
var KissRewards = map[KissReason]int{
	ReasonDailyLogin:     3,
	ReasonSendKiss:       1,
	ReasonUploadMoment:   5,
	ReasonFeedPet:        2,
	ReasonPetPet:         1,
	ReasonStreakBonus:    10,
	ReasonPurchaseOutfit: 0,
	ReasonCalendarEvent:  3,
}

// Valid reports whether the reason is a known reward kind.
func (r KissReason) Valid() bool {
	_, ok := KissRewards[r]
	return ok
}
