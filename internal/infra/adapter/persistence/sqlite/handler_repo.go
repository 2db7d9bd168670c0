package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/repository"
)

type HandlerRepo struct{ db repository.DBTX }

func NewHandlerRepo(db repository.DBTX) repository.HandlerRepository {
	return &HandlerRepo{db: db}
}

func (repo *HandlerRepo) Upsert(ctx context.Context, handler *entity.Handler) error {
	const query = `
INSERT INTO handler (topic, handler_type, settings)
VALUES (?, (SELECT id FROM handler_type WHERE name = ?), ?)
ON CONFLICT(topic) DO UPDATE SET
    handler_type = excluded.handler_type,
    settings     = excluded.settings`
	raw, err := encodeSettings(handler.Settings, "")
	if err != nil {
		return fmt.Errorf("Upsert: encode settings: %w", err)
	}
	if _, err := repo.db.ExecContext(ctx, query, handler.Topic, string(handler.Type), raw); err != nil {
		return fmt.Errorf("Upsert: ExecContext: %w", err)
	}
	return nil
}

func (repo *HandlerRepo) Get(ctx context.Context, topic string) (*entity.Handler, error) {
	const query = `
SELECT h.topic, ht.name, h.settings
FROM handler h
JOIN handler_type ht ON ht.id = h.handler_type
WHERE h.topic = ?
LIMIT 1`
	var (
		h   entity.Handler
		raw sql.NullString
	)
	err := repo.db.QueryRowContext(ctx, query, topic).Scan(&h.Topic, &h.Type, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	if h.Settings, err = decodeSettings(raw); err != nil {
		return nil, fmt.Errorf("Get: decode settings: %w", err)
	}
	return &h, nil
}

func (repo *HandlerRepo) ListByType(ctx context.Context, handlerType entity.HandlerType) ([]*entity.Handler, error) {
	const query = `
SELECT h.topic, ht.name, h.settings
FROM handler h
JOIN handler_type ht ON ht.id = h.handler_type
WHERE ht.name = ?
ORDER BY h.topic ASC`
	rows, err := repo.db.QueryContext(ctx, query, string(handlerType))
	if err != nil {
		return nil, fmt.Errorf("ListByType: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	handlers := make([]*entity.Handler, 0, 50)
	for rows.Next() {
		var (
			h   entity.Handler
			raw sql.NullString
		)
		if err := rows.Scan(&h.Topic, &h.Type, &raw); err != nil {
			return nil, fmt.Errorf("ListByType: Scan: %w", err)
		}
		if h.Settings, err = decodeSettings(raw); err != nil {
			return nil, fmt.Errorf("ListByType: decode settings: %w", err)
		}
		handlers = append(handlers, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByType: rows.Err: %w", err)
	}
	return handlers, nil
}
