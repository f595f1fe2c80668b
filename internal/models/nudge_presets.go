package models

// NudgePreset is a named vibration pattern offered to senders
type NudgePreset struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	Emoji   string  `json:"emoji"`
	Pattern []int32 `json:"pattern"`
}

// NudgePresets lists the built-in vibration patterns, in display order.
var NudgePresets = []NudgePreset{
	{Key: "gentle_tap", Name: "Gentle tap", Emoji: "👆", Pattern: []int32{100}},
	{Key: "double_tap", Name: "Double tap", Emoji: "👆👆", Pattern: []int32{100, 80, 100}},
	{Key: "heartbeat", Name: "Heartbeat", Emoji: "💓", Pattern: []int32{200, 100, 200, 400, 200, 100, 200}},
	{Key: "kiss", Name: "Kiss", Emoji: "💋", Pattern: []int32{50, 50, 50, 50, 300}},
	{Key: "hug", Name: "Hug", Emoji: "🤗", Pattern: []int32{500, 100, 500}},
	{Key: "sos", Name: "Miss you!", Emoji: "😭", Pattern: []int32{100, 50, 100, 50, 100, 200, 300, 50, 300, 50, 300, 200, 100, 50, 100, 50, 100}},
	{Key: "party", Name: "Party!", Emoji: "🎉", Pattern: []int32{50, 30, 50, 30, 50, 30, 100, 50, 100, 50, 200}},
}

// PresetByKey looks up a built-in pattern by its key.
func PresetByKey(key string) (NudgePreset, bool) {
	for _, p := range NudgePresets {
		if p.Key == key {
			return p, true
		}
	}
	return NudgePreset{}, false
}
