package resolver

import (
	"sort"
	"strings"

	"github.com/alexanderramin/codelog/internal/domain"
)

const (
	topicNameScore    = 10
	topicKeywordScore = 5
	skillKeywordScore = 5
	skillNameScore    = 15
)

type inference struct {
	topic       string
	skill       string
	difficulty  domain.Difficulty
	targetHours float64
}

// infer picks the best topic and skill from pack for rawName. Only positive
// scores count; ties go to the alphabetically first name. The skill's
// difficulty beats the topic's.
func infer(pack domain.LanguagePack, rawName string, itemType domain.ItemType) inference {
	text := strings.ToLower(strings.TrimSpace(rawName))

	inf := inference{
		topic:       defaultTopic,
		difficulty:  domain.DifficultyBeginner,
		targetHours: fallbackTargetHours(itemType),
	}

	if name, ok := bestTopic(pack.Topics, text); ok {
		t := pack.Topics[name]
		inf.topic = name
		if t.DefaultDifficulty != "" {
			inf.difficulty = t.DefaultDifficulty
		}
		if t.DefaultTargetHours > 0 {
			inf.targetHours = t.DefaultTargetHours
		}
	}
	if name, ok := bestSkill(pack.Skills, text); ok {
		inf.skill = name
		if d := pack.Skills[name].Difficulty; d != "" {
			inf.difficulty = d
		}
	}
	return inf
}

func bestTopic(topics map[string]domain.Topic, text string) (string, bool) {
	best, bestScore := "", 0
	for _, name := range sortedKeys(topics) {
		t := topics[name]
		score := 0
		if strings.Contains(text, strings.ToLower(name)) {
			score += topicNameScore
		}
		score += topicKeywordScore * countContained(text, t.Keywords)
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	return best, bestScore > 0
}

func bestSkill(skills map[string]domain.Skill, text string) (string, bool) {
	best, bestScore := "", 0
	for _, name := range sortedKeys(skills) {
		s := skills[name]
		score := skillKeywordScore * countContained(text, s.Keywords)
		if strings.Contains(text, strings.ToLower(name)) {
			score += skillNameScore
		}
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	return best, bestScore > 0
}

func countContained(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			n++
		}
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fallbackTargetHours(t domain.ItemType) float64 {
	if t == domain.ItemProject {
		return 20
	}
	return 5
}
