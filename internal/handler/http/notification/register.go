// Package notification serves dispatch and archive history.
package notification

import (
	"context"
	"net/http"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/repository"
	notifyUC "notify-svc/internal/usecase/notify"
)

// Dispatcher delivers one message to the handler of a topic.
type Dispatcher interface {
	Dispatch(ctx context.Context, topic string, msg *entity.Message) (*notifyUC.DispatchResult, error)
}

// History reads and clears the notification archive.
type History interface {
	History(ctx context.Context, topic string) ([]*entity.ArchiveRecord, error)
	HistoryByTopicAndTime(ctx context.Context, topic string, r entity.TimeRange) ([]*entity.ArchiveRecord, error)
	HistoryByTime(ctx context.Context, q repository.HistoryQuery) ([]*entity.ArchiveRecord, error)
	DeleteAll(ctx context.Context) error
}

// Register registers the notification routes with the given mux.
func Register(mux *http.ServeMux, dispatcher Dispatcher, history History) {
	mux.Handle("GET /notifications", ListHandler{history})
	mux.Handle("DELETE /notifications", DeleteHandler{history})
	mux.Handle("GET /notifications/{topic}", TopicHandler{history})
	mux.Handle("POST /notifications/{topic}", DispatchHandler{dispatcher})
}
