package repository

import (
	"context"

	"notify-svc/internal/domain/entity"
)

// HistoryQuery selects archive records across all topics.
// Limit <= 0 means unbounded.
type HistoryQuery struct {
	Range  entity.TimeRange
	Offset int
	Limit  int
}

// ArchiveRepository is the append-only notification archive.
// All list methods order by time descending and return an empty slice
// when nothing matches.
type ArchiveRepository interface {
	Append(ctx context.Context, record *entity.ArchiveRecord) error
	ListByTopic(ctx context.Context, topic string) ([]*entity.ArchiveRecord, error)
	ListByTopicAndTime(ctx context.Context, topic string, r entity.TimeRange) ([]*entity.ArchiveRecord, error)
	ListByTime(ctx context.Context, q HistoryQuery) ([]*entity.ArchiveRecord, error)
	DeleteAll(ctx context.Context) error
}
