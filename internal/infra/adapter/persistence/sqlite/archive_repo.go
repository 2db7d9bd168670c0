package sqlite

import (
	"context"
	"fmt"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/repository"
)

const archiveColumns = `id, time, topic, title, content, send_failed`

type ArchiveRepo struct {
	db repository.DBTX
	qb *ArchiveQueryBuilder
}

func NewArchiveRepo(db repository.DBTX) repository.ArchiveRepository {
	return &ArchiveRepo{db: db, qb: NewArchiveQueryBuilder()}
}

func (repo *ArchiveRepo) Append(ctx context.Context, record *entity.ArchiveRecord) error {
	const query = `
INSERT INTO notification_archive (time, topic, title, content, send_failed)
VALUES (?, ?, ?, ?, ?)`
	res, err := repo.db.ExecContext(ctx, query,
		record.Time, record.Topic, record.Title, record.Content, record.SendFailed)
	if err != nil {
		return fmt.Errorf("Append: ExecContext: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		record.ID = id
	}
	return nil
}

func (repo *ArchiveRepo) ListByTopic(ctx context.Context, topic string) ([]*entity.ArchiveRecord, error) {
	where, args := repo.qb.BuildWhereClause(&topic, entity.TimeRange{})
	return repo.list(ctx, "ListByTopic", where, "", args)
}

func (repo *ArchiveRepo) ListByTopicAndTime(ctx context.Context, topic string, r entity.TimeRange) ([]*entity.ArchiveRecord, error) {
	where, args := repo.qb.BuildWhereClause(&topic, r)
	return repo.list(ctx, "ListByTopicAndTime", where, "", args)
}

func (repo *ArchiveRepo) ListByTime(ctx context.Context, q repository.HistoryQuery) ([]*entity.ArchiveRecord, error) {
	where, args := repo.qb.BuildWhereClause(nil, q.Range)
	page, pageArgs := repo.qb.BuildPagination(q.Offset, q.Limit)
	return repo.list(ctx, "ListByTime", where, page, append(args, pageArgs...))
}

func (repo *ArchiveRepo) DeleteAll(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM notification_archive`); err != nil {
		return fmt.Errorf("DeleteAll: ExecContext: %w", err)
	}
	return nil
}

// list runs a SELECT over the archive with the given WHERE and pagination clauses.
func (repo *ArchiveRepo) list(ctx context.Context, op, where, page string, args []interface{}) ([]*entity.ArchiveRecord, error) {
	query := `
SELECT ` + archiveColumns + `
FROM notification_archive
` + where + `
ORDER BY time DESC, id DESC
` + page
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: QueryContext: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	records := make([]*entity.ArchiveRecord, 0, 50)
	for rows.Next() {
		var rec entity.ArchiveRecord
		if err := rows.Scan(&rec.ID, &rec.Time, &rec.Topic,
			&rec.Title, &rec.Content, &rec.SendFailed); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return records, nil
}
