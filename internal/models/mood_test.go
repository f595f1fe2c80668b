package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoodFor(t *testing.T) {
	tests := []struct {
		happiness int
		want      PetMood
	}{
		{100, MoodEcstatic},
		{90, MoodEcstatic},
		{89, MoodHappy},
		{70, MoodHappy},
		{69, MoodContent},
		{50, MoodContent},
		{49, MoodSad},
		{30, MoodSad},
		{29, MoodMiserable},
		{0, MoodMiserable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MoodFor(tt.happiness), "happiness=%d", tt.happiness)
	}
}

func TestKissReasonValid(t *testing.T) {
	assert.True(t, ReasonSendKiss.Valid())
	assert.True(t, ReasonPurchaseOutfit.Valid())
	assert.False(t, KissReason("free_money").Valid())
}

func TestNudgePresets(t *testing.T) {
	preset, ok := PresetByKey("heartbeat")
	assert.True(t, ok)
	assert.Equal(t, "💓", preset.Emoji)

	_, ok = PresetByKey("unknown")
	assert.False(t, ok)

	// Every built-in pattern must itself satisfy the pattern rules.
	for _, p := range NudgePresets {
		assert.NotEmpty(t, p.Pattern, p.Key)
		assert.LessOrEqual(t, len(p.Pattern), 20, p.Key)
		for _, d := range p.Pattern {
			assert.GreaterOrEqual(t, d, int32(0), p.Key)
		}
	}
}
