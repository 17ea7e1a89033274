package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/repository"
)

type configService struct {
	config   repository.ScoringConfigRepo
	observer UseCaseObserver
}

func NewConfigService(config repository.ScoringConfigRepo, observers ...UseCaseObserver) ConfigService {
	return &configService{config: config, observer: useCaseObserverOrNoop(observers)}
}

func (s *configService) Get(ctx context.Context) (domain.ScoringConfig, error) {
	return s.config.Get(ctx)
}

// SetDifficultyWeight changes the weight for future saves. Stored sessions
// keep the points they were awarded.
func (s *configService) SetDifficultyWeight(ctx context.Context, d domain.Difficulty, weight float64) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "set-difficulty-weight", startedAt, map[string]any{"difficulty": string(d)}, &err)

	if d, err = domain.ParseDifficulty(string(d)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err = validFactor(weight); err != nil {
		return err
	}
	return s.config.SetDifficultyWeight(ctx, string(d), weight)
}

func (s *configService) SetStatusMultiplier(ctx context.Context, st domain.SessionStatus, multiplier float64) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "set-status-multiplier", startedAt, map[string]any{"status": string(st)}, &err)

	if st, err = domain.ParseSessionStatus(string(st)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err = validFactor(multiplier); err != nil {
		return err
	}
	return s.config.SetStatusMultiplier(ctx, string(st), multiplier)
}

func validFactor(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: factor must be a non-negative number", ErrInvalidInput)
	}
	return nil
}
