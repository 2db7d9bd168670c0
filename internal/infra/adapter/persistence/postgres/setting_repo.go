package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/repository"
)

type SettingRepo struct{ db repository.DBTX }

func NewSettingRepo(db repository.DBTX) repository.SettingRepository {
	return &SettingRepo{db: db}
}

func (repo *SettingRepo) Get(ctx context.Context, handlerType entity.HandlerType) (*entity.GlobalSetting, error) {
	const query = `
SELECT gs.settings
FROM global_setting gs
JOIN handler_type ht ON ht.id = gs.handler_type
WHERE ht.name = $1
LIMIT 1`
	var raw sql.NullString
	err := repo.db.QueryRowContext(ctx, query, string(handlerType)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	settings, err := decodeSettings(raw)
	if err != nil {
		return nil, fmt.Errorf("Get: decode settings: %w", err)
	}
	return &entity.GlobalSetting{Type: handlerType, Settings: settings}, nil
}

func (repo *SettingRepo) Put(ctx context.Context, setting *entity.GlobalSetting) error {
	const query = `
INSERT INTO global_setting (handler_type, settings)
VALUES ((SELECT id FROM handler_type WHERE name = $1), $2)
ON CONFLICT (handler_type) DO UPDATE SET settings = EXCLUDED.settings`
	raw, err := encodeSettings(setting.Settings, "{}")
	if err != nil {
		return fmt.Errorf("Put: encode settings: %w", err)
	}
	if _, err := repo.db.ExecContext(ctx, query, string(setting.Type), raw); err != nil {
		return fmt.Errorf("Put: ExecContext: %w", err)
	}
	return nil
}

func decodeSettings(raw sql.NullString) (entity.Settings, error) {
	if !raw.Valid {
		return nil, nil
	}
	return entity.UnmarshalSettings(&raw.String)
}

func encodeSettings(s entity.Settings, fallback string) (any, error) {
	raw, err := entity.MarshalSettings(s)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		if fallback == "" {
			return nil, nil
		}
		return fallback, nil
	}
	return *raw, nil
}
