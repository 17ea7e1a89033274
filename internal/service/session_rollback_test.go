package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsert_RollbackOnStatsWriteFailure(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	item := testutil.SeedItem(t, env.db, testutil.NewTestWorkItem("Two Sum"))

	// ExecContext #1 = sessions insert, #2 = stats update.
	failUoW := &testutil.FaultyUoW{DB: env.db, FailExecOn: 2, Err: errors.New("injected stats failure")}
	_, err := env.sessionServiceWith(failUoW).Upsert(ctx, logInput(item.ID, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected stats failure")

	assert.Equal(t, 0, env.sessionCount(t), "session insert must roll back")
	assert.Equal(t, domain.ItemStats{}, env.mustItem(t, item.ID).Stats)
}

func TestUpsert_RollbackRemovesCreatedItem(t *testing.T) {
	env := setupEnv(t)

	// #1 item insert, #2 and #3 aliases, #4 session insert.
	failUoW := &testutil.FaultyUoW{DB: env.db, FailExecOn: 4, Err: errors.New("injected session failure")}
	_, err := env.sessionServiceWith(failUoW).Upsert(context.Background(), namedInput("Matrix Rotation", 1))
	require.Error(t, err)

	assert.Equal(t, 0, env.itemCount(t), "lazily created item must roll back with the session")
	assert.Equal(t, 0, env.sessionCount(t))
}

func TestUpsert_HistoryReadFailureWritesNothing(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	item := testutil.SeedItem(t, env.db, testutil.NewTestWorkItem("Two Sum"))
	id, err := env.sessionService().Upsert(ctx, logInput(item.ID, 2))
	require.NoError(t, err)
	before := env.mustItem(t, item.ID).Stats

	failUoW := &testutil.FaultyUoW{DB: env.db, FailQueryContaining: "FROM sessions", Err: errors.New("injected read failure")}
	in := logInput(item.ID, 9)
	in.ID = id
	_, err = env.sessionServiceWith(failUoW).Upsert(ctx, in)
	require.Error(t, err)

	sess, err := env.sessions.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2.0, sess.HoursSpent)
	assert.Equal(t, before, env.mustItem(t, item.ID).Stats)
}

func TestDelete_RollbackOnRecomputeFailure(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	item := testutil.SeedItem(t, env.db, testutil.NewTestWorkItem("Two Sum"))
	svc := env.sessionService()
	id, err := svc.Upsert(ctx, logInput(item.ID, 2))
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, logInput(item.ID, 1))
	require.NoError(t, err)

	// #1 delete, #2 stats update.
	failUoW := &testutil.FaultyUoW{DB: env.db, FailExecOn: 2, Err: errors.New("injected stats failure")}
	require.Error(t, env.sessionServiceWith(failUoW).Delete(ctx, id))

	assert.Equal(t, 2, env.sessionCount(t), "delete must roll back")
	assert.Equal(t, 3.0, env.mustItem(t, item.ID).Stats.TotalHours)
}
