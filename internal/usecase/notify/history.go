package notify

import (
	"context"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/repository"
)

// HistoryService answers archive queries. Results are ordered newest first
// and are never nil.
type HistoryService struct {
	repo repository.ArchiveRepository
}

func NewHistoryService(repo repository.ArchiveRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// History returns every record of topic.
func (h *HistoryService) History(ctx context.Context, topic string) ([]*entity.ArchiveRecord, error) {
	topic = entity.NormalizeTopic(topic)
	if topic == "" {
		return nil, entity.MissingAttribute("Required attribute: topic")
	}
	recs, err := h.repo.ListByTopic(ctx, topic)
	if err != nil {
		return nil, entity.Internal("Failed to get notifications", err)
	}
	return orEmpty(recs), nil
}

// HistoryByTopicAndTime returns the records of topic within r. At least one
// bound is required; bounds are inclusive.
func (h *HistoryService) HistoryByTopicAndTime(ctx context.Context, topic string, r entity.TimeRange) ([]*entity.ArchiveRecord, error) {
	topic = entity.NormalizeTopic(topic)
	if topic == "" {
		return nil, entity.MissingAttribute("Required attribute: topic")
	}
	if r.IsZero() {
		return nil, entity.MissingAttribute("Missing fromTime/toTime")
	}
	recs, err := h.repo.ListByTopicAndTime(ctx, topic, r)
	if err != nil {
		return nil, entity.Internal("Failed to get notifications", err)
	}
	return orEmpty(recs), nil
}

// HistoryByTime returns records across all topics. Either bound may be
// omitted. A non-positive limit means unbounded.
func (h *HistoryService) HistoryByTime(ctx context.Context, q repository.HistoryQuery) ([]*entity.ArchiveRecord, error) {
	if q.Offset < 0 {
		return nil, entity.BadRequest("offset must not be negative")
	}
	recs, err := h.repo.ListByTime(ctx, q)
	if err != nil {
		return nil, entity.Internal("Failed to get notifications", err)
	}
	return orEmpty(recs), nil
}

// DeleteAll removes every archive record.
func (h *HistoryService) DeleteAll(ctx context.Context) error {
	if err := h.repo.DeleteAll(ctx); err != nil {
		return entity.Internal("Failed to delete notifications", err)
	}
	return nil
}

func orEmpty(recs []*entity.ArchiveRecord) []*entity.ArchiveRecord {
	if recs == nil {
		return []*entity.ArchiveRecord{}
	}
	return recs
}
