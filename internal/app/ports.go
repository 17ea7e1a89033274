package app

import "context"

// UpsertSessionUseCase saves one session. Bulk callers such as the importer
// depend on this instead of the full session service.
type UpsertSessionUseCase interface {
	Upsert(ctx context.Context, in SessionInput) (string, error)
}
