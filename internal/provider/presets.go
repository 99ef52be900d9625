package provider

import "github.com/math-master/backend/internal/domain/mocktest"

// Preset is a quick-start test configuration. Quick starts always use the
// sample bank across every topic, so they are available even when the AI
// service is down.
type Preset struct {
	Name          string
	Title         string
	QuestionCount int
	Difficulty    mocktest.Difficulty
}

var presets = map[string]Preset{
	"quick_5":      {Name: "quick_5", Title: "Quick test - 5 questions", QuestionCount: 5, Difficulty: mocktest.DifficultyMedium},
	"standard_10":  {Name: "standard_10", Title: "Standard test - 10 questions", QuestionCount: 10, Difficulty: mocktest.DifficultyMedium},
	"challenge_15": {Name: "challenge_15", Title: "Challenge - 15 questions", QuestionCount: 15, Difficulty: mocktest.DifficultyMedium},
	"full_20":      {Name: "full_20", Title: "Full test - 20 questions", QuestionCount: 20, Difficulty: mocktest.DifficultyMedium},
}

// PresetByName looks up a quick-start preset.
func PresetByName(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}
