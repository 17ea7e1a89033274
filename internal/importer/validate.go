package importer

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/normalize"
)

// ValidateImportSchema checks the whole file before anything is written.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	defaults := schema.Defaults
	if defaults == nil {
		defaults = &DefaultsImport{}
	}
	errs = append(errs, validateDefaults(defaults)...)

	if len(schema.Sessions) == 0 {
		errs = append(errs, fmt.Errorf("sessions: at least one session is required"))
	}
	for i := range schema.Sessions {
		errs = append(errs, validateSession(fmt.Sprintf("sessions[%d]", i), &schema.Sessions[i], defaults)...)
	}

	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	var errs []error
	if d.Type != "" {
		if _, err := domain.ParseItemType(d.Type); err != nil {
			errs = append(errs, fmt.Errorf("defaults.type: %w", err))
		}
	}
	if d.Status != "" {
		if _, err := domain.ParseSessionStatus(d.Status); err != nil {
			errs = append(errs, fmt.Errorf("defaults.status: %w", err))
		}
	}
	return errs
}

func validateSession(path string, s *SessionImport, d *DefaultsImport) []error {
	var errs []error

	if normalize.Slugify(s.Item) == "" {
		errs = append(errs, fmt.Errorf("%s.item: a name with at least one letter or digit is required", path))
	}
	if domain.CoalesceStr(s.Language, d.Language) == "" {
		errs = append(errs, fmt.Errorf("%s.language is required (or set defaults.language)", path))
	}
	if s.Type != "" {
		if _, err := domain.ParseItemType(s.Type); err != nil {
			errs = append(errs, fmt.Errorf("%s.type: %w", path, err))
		}
	}

	if s.Date == "" {
		errs = append(errs, fmt.Errorf("%s.date is required", path))
	} else if _, err := time.Parse(domain.DateLayout, s.Date); err != nil {
		errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", path, s.Date))
	}

	switch {
	case s.Hours == nil:
		errs = append(errs, fmt.Errorf("%s.hours is required", path))
	case *s.Hours < 0 || math.IsNaN(*s.Hours) || math.IsInf(*s.Hours, 0):
		errs = append(errs, fmt.Errorf("%s.hours must be >= 0, got %v", path, *s.Hours))
	}

	if s.Status != "" {
		if _, err := domain.ParseSessionStatus(s.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: %w", path, err))
		}
	}
	if s.Difficulty != "" {
		if _, err := domain.ParseDifficulty(s.Difficulty); err != nil {
			errs = append(errs, fmt.Errorf("%s.difficulty: %w", path, err))
		}
	}

	return errs
}
