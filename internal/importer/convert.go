package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/codelog/internal/app"
	"github.com/alexanderramin/codelog/internal/domain"
)

// Convert turns a validated schema into upsert payloads ordered by date, so
// each session's progress snapshot reflects only earlier work. Entries on
// the same date keep file order. Call ValidateImportSchema first.
func Convert(schema *ImportSchema) ([]app.SessionInput, error) {
	d := schema.Defaults
	if d == nil {
		d = &DefaultsImport{}
	}

	inputs := make([]app.SessionInput, 0, len(schema.Sessions))
	for i, s := range schema.Sessions {
		date, err := time.Parse(domain.DateLayout, s.Date)
		if err != nil {
			return nil, fmt.Errorf("sessions[%d]: parsing date: %w", i, err)
		}
		itemType, err := domain.ParseItemType(domain.CoalesceStr(s.Type, d.Type, string(domain.ItemExercise)))
		if err != nil {
			return nil, fmt.Errorf("sessions[%d]: %w", i, err)
		}
		if s.Hours == nil {
			return nil, fmt.Errorf("sessions[%d]: hours missing", i)
		}

		inputs = append(inputs, app.SessionInput{
			LanguageCode: strings.ToLower(strings.TrimSpace(domain.CoalesceStr(s.Language, d.Language))),
			ItemType:     itemType,
			ItemName:     s.Item,
			ForceCreate:  s.New,
			Date:         date,
			Status:       domain.SessionStatus(domain.CoalesceStr(s.Status, d.Status, string(domain.StatusCompleted))),
			HoursSpent:   *s.Hours,
			Notes:        s.Notes,
			Tags:         s.Tags,
			Difficulty:   domain.Difficulty(s.Difficulty),
			Topic:        s.Topic,
		})
	}

	sort.SliceStable(inputs, func(i, j int) bool {
		return inputs[i].Date.Before(inputs[j].Date)
	})
	return inputs, nil
}
