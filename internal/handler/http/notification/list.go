package notification

import (
	"net/http"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/handler/http/pathutil"
	"notify-svc/internal/handler/http/respond"
	"notify-svc/internal/repository"
)

type ListHandler struct{ Svc History }

// ServeHTTP returns archive records of every topic, newest first, filtered
// by fromTime/toTime and paged by offset/limit.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q, err := historyQuery(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	recs, err := h.Svc.HistoryByTime(r.Context(), q)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, recs)
}

func historyQuery(r *http.Request) (repository.HistoryQuery, error) {
	rng, err := pathutil.TimeRange(r)
	if err != nil {
		return repository.HistoryQuery{}, err
	}
	q := repository.HistoryQuery{Range: rng}
	offset, err := pathutil.QueryInt64(r, "offset")
	if err != nil {
		return q, err
	}
	if offset != nil {
		q.Offset = int(*offset)
	}
	limit, err := pathutil.QueryInt64(r, "limit")
	if err != nil {
		return q, err
	}
	if limit != nil {
		q.Limit = int(*limit)
	}
	return q, nil
}

type TopicHandler struct{ Svc History }

// ServeHTTP returns the archive of {topic}. With fromTime or toTime only the
// records inside the range are returned.
func (h TopicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rng, err := pathutil.TimeRange(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	topic := r.PathValue("topic")

	var recs []*entity.ArchiveRecord
	if rng.IsZero() {
		recs, err = h.Svc.History(r.Context(), topic)
	} else {
		recs, err = h.Svc.HistoryByTopicAndTime(r.Context(), topic, rng)
	}
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, recs)
}

type DeleteHandler struct{ Svc History }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.DeleteAll(r.Context()); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Empty(w)
}
