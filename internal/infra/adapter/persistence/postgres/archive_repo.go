package postgres

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
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		record.Time, record.Topic, record.Title, record.Content, record.SendFailed,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("Append: QueryRowContext: %w", err)
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
	page, pageArgs := repo.qb.BuildPagination(len(args)+1, q.Offset, q.Limit)
	return repo.list(ctx, "ListByTime", where, page, append(args, pageArgs...))
}

func (repo *ArchiveRepo) DeleteAll(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM notification_archive`); err != nil {
		return fmt.Errorf("DeleteAll: ExecContext: %w", err)
	}
	return nil
}

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
