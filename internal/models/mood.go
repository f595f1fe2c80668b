package models

// PetMood is derived from a pet's happiness value
type PetMood string

const (
	MoodEcstatic  PetMood = "ecstatic"
	MoodHappy     PetMood = "happy"
	MoodContent   PetMood = "content"
	MoodSad       PetMood = "sad"
	MoodMiserable PetMood = "miserable"
)

// MoodFor classifies a happiness value. Thresholds are closed lower
// bounds, checked highest-first.
func MoodFor(happiness int) PetMood {
	switch {
	case happiness >= 90:
		return MoodEcstatic
	case happiness >= 70:
		return MoodHappy
	case happiness >= 50:
		return MoodContent
	case happiness >= 30:
		return MoodSad
	default:
		return MoodMiserable
	}
}

// Mood returns the pet's current mood.
func (p *Pet) Mood() PetMood {
	return MoodFor(p.Happiness)
}
