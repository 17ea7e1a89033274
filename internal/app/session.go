package app

import (
	"time"

	"github.com/alexanderramin/codelog/internal/domain"
)

// SessionInput is the caller-editable part of a session. Points and progress
// are always derived on save.
//
// The item is named either by ItemID or by (LanguageCode, ItemType,
// ItemName). With a name, ForceCreate skips the suggestion step and creates
// a new item unless one with the same slug exists.
type SessionInput struct {
	// ID is empty for a new session.
	ID string

	ItemID       string
	LanguageCode string
	ItemType     domain.ItemType
	ItemName     string
	ForceCreate  bool

	Date       time.Time
	Status     domain.SessionStatus
	HoursSpent float64
	Notes      string
	Tags       []string
	// Difficulty and Topic fall back to the item defaults when empty.
	Difficulty domain.Difficulty
	Topic      string
}

// NamesItem reports whether the item is given by name rather than id.
func (in SessionInput) NamesItem() bool {
	return in.ItemID == "" && in.ItemName != ""
}
