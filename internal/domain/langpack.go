package domain

// LanguagePack is the per-language taxonomy used to infer defaults for new
// work items.
type LanguagePack struct {
	Topics map[string]Topic
	Skills map[string]Skill
}

type Topic struct {
	DefaultDifficulty  Difficulty
	DefaultTargetHours float64
	Keywords           []string
}

type Skill struct {
	Keywords   []string
	Difficulty Difficulty
}
