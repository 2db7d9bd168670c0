package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/infra/adapter/persistence/sqlite"
	"notify-svc/internal/infra/db"
	"notify-svc/internal/repository"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Open(context.Background(), db.Options{Dialect: db.DialectSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.MigrateUp(conn, db.DialectSQLite))
	return conn
}

func seedArchive(t *testing.T, repo repository.ArchiveRepository, topic string, times ...int64) {
	t.Helper()
	for _, ts := range times {
		require.NoError(t, repo.Append(context.Background(),
			&entity.ArchiveRecord{Time: ts, Topic: topic, Title: "t", Content: "c"}))
	}
}

func TestIntegration_HistoryTimeRangeIsInclusive(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewArchiveRepo(openMemory(t))
	seedArchive(t, repo, "alerts", 10, 20, 25, 30, 35, 40)
	seedArchive(t, repo, "other", 30)

	from, to := int64(20), int64(35)
	got, err := repo.ListByTopicAndTime(ctx, "alerts", entity.TimeRange{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, int64(35), got[0].Time)
	assert.Equal(t, int64(20), got[3].Time)

	from = 35
	got, err = repo.ListByTopicAndTime(ctx, "alerts", entity.TimeRange{From: &from})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	all, err := repo.ListByTime(ctx, repository.HistoryQuery{Offset: 1, Limit: 3})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(35), all[0].Time)
}

func TestIntegration_HandlerUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewHandlerRepo(openMemory(t))

	require.NoError(t, repo.Upsert(ctx, &entity.Handler{Topic: "ts", Type: entity.HandlerTypeEmail,
		Settings: entity.Settings{"server": "a"}}))
	require.NoError(t, repo.Upsert(ctx, &entity.Handler{Topic: entity.NormalizeTopic("TS"), Type: entity.HandlerTypeEmail}))

	list, err := repo.ListByType(ctx, entity.HandlerTypeEmail)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Settings)

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_SettingPutGet(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSettingRepo(openMemory(t))

	got, err := repo.Get(ctx, entity.HandlerTypeEmail)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Put(ctx, &entity.GlobalSetting{Type: entity.HandlerTypeEmail, Settings: entity.Settings{"port": 25}}))
	require.NoError(t, repo.Put(ctx, &entity.GlobalSetting{Type: entity.HandlerTypeEmail, Settings: entity.Settings{"port": 587}}))

	got, err = repo.Get(ctx, entity.HandlerTypeEmail)
	require.NoError(t, err)
	assert.Equal(t, float64(587), got.Settings["port"])
}

func TestIntegration_DeleteAllEmptiesHistory(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewArchiveRepo(openMemory(t))
	seedArchive(t, repo, "alerts", 1, 2, 3)

	require.NoError(t, repo.DeleteAll(ctx))

	got, err := repo.ListByTime(ctx, repository.HistoryQuery{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
