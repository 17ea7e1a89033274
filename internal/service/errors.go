package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/codelog/internal/resolver"
)

var (
	// ErrInvalidInput marks session or config input rejected before any write.
	ErrInvalidInput = errors.New("invalid input")
	// ErrItemInactive is returned when a session targets a deactivated item.
	ErrItemInactive = errors.New("work item is inactive")
)

// AmbiguousItemError is returned by Upsert when the item name is close to
// existing items. Nothing was written; the caller picks a suggestion or
// retries with ForceCreate.
type AmbiguousItemError struct {
	Name        string
	Suggestions []resolver.Candidate
}

func (e *AmbiguousItemError) Error() string {
	names := make([]string, 0, len(e.Suggestions))
	for _, c := range e.Suggestions {
		names = append(names, c.Name)
	}
	return fmt.Sprintf("%q is close to existing items: %s", e.Name, strings.Join(names, ", "))
}

func (e *AmbiguousItemError) Unwrap() error { return resolver.ErrAmbiguous }
