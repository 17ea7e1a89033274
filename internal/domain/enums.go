package domain

import (
	"fmt"
	"strings"
)

type ItemType string

const (
	ItemExercise ItemType = "Exercise"
	ItemProject  ItemType = "Project"
)

type SessionStatus string

const (
	StatusPlanned    SessionStatus = "Planned"
	StatusInProgress SessionStatus = "In Progress"
	StatusCompleted  SessionStatus = "Completed"
	StatusBlocked    SessionStatus = "Blocked"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
	DifficultyExpert       Difficulty = "Expert"
)

// ItemTypes, SessionStatuses and Difficulties list the accepted values in display order.
var (
	ItemTypes       = []ItemType{ItemExercise, ItemProject}
	SessionStatuses = []SessionStatus{StatusPlanned, StatusInProgress, StatusCompleted, StatusBlocked}
	Difficulties    = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert}
)

// ParseItemType matches s case-insensitively against the known item types.
func ParseItemType(s string) (ItemType, error) {
	for _, t := range ItemTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown item type %q (want Exercise or Project)", s)
}

// ParseSessionStatus accepts the display form ("In Progress") as well as
// snake/kebab variants ("in_progress", "in-progress").
func ParseSessionStatus(s string) (SessionStatus, error) {
	key := normalizeEnumKey(s)
	for _, st := range SessionStatuses {
		if normalizeEnumKey(string(st)) == key {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown session status %q", s)
}

func ParseDifficulty(s string) (Difficulty, error) {
	key := normalizeEnumKey(s)
	for _, d := range Difficulties {
		if normalizeEnumKey(string(d)) == key {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

func normalizeEnumKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", " ", "-", " ").Replace(s)
}
