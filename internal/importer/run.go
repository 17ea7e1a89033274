package importer

import (
	"context"

	"github.com/alexanderramin/codelog/internal/app"
)

// Failure is an input that could not be saved.
type Failure struct {
	Input app.SessionInput
	Err   error
}

type Report struct {
	Imported int
	Failures []Failure
}

// Run saves inputs in order, one upsert each. A failed input is recorded and
// the rest still run; only a cancelled context stops early.
func Run(ctx context.Context, uc app.UpsertSessionUseCase, inputs []app.SessionInput) (Report, error) {
	var r Report
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		if _, err := uc.Upsert(ctx, in); err != nil {
			r.Failures = append(r.Failures, Failure{Input: in, Err: err})
			continue
		}
		r.Imported++
	}
	return r, nil
}
