package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/repository"
	"github.com/alexanderramin/codelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoringConfigRepo_SeededDefaults(t *testing.T) {
	repo := repository.NewSQLiteScoringConfigRepo(testutil.NewTestDB(t))

	cfg, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.DifficultyWeights["Intermediate"])
	assert.Equal(t, 1.2, cfg.StatusMultipliers["Completed"])
}

func TestScoringConfigRepo_SetIsVisibleOnNextGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.ClearScoringConfig(t, database)
	repo := repository.NewSQLiteScoringConfigRepo(database)
	ctx := context.Background()

	cfg, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cfg.DifficultyWeights)
	assert.Equal(t, 1.0, cfg.DifficultyWeight("Expert"))

	require.NoError(t, repo.SetDifficultyWeight(ctx, "Expert", 3))
	require.NoError(t, repo.SetStatusMultiplier(ctx, "Blocked", 0.25))
	require.NoError(t, repo.SetDifficultyWeight(ctx, "Expert", 4))

	cfg, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.DifficultyWeight("Expert"))
	assert.Equal(t, 0.25, cfg.StatusMultiplier("Blocked"))
}

func TestLanguageRepo_SeededAndUpsert(t *testing.T) {
	repo := repository.NewSQLiteLanguageRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	langs, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, langs, 5)
	assert.Equal(t, "go", langs[0].Code, "languages are ordered by code")

	require.NoError(t, repo.Create(ctx, &domain.Language{Code: "zig", DisplayName: "Zig", Active: false}))
	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 5)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	require.NoError(t, repo.Create(ctx, &domain.Language{Code: "zig", DisplayName: "Ziglang", Active: true}))
	zig, err := repo.GetByCode(ctx, "zig")
	require.NoError(t, err)
	assert.Equal(t, "Ziglang", zig.DisplayName)
	assert.True(t, zig.Active)

	_, err = repo.GetByCode(ctx, "cobol")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
