package notify

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/observability/logging"
	"notify-svc/internal/observability/tracing"
	"notify-svc/internal/repository"
	"notify-svc/internal/resilience/retry"
)

// defaultArchiveTimeout bounds the archive write independently of the
// dispatch deadline.
const defaultArchiveTimeout = 5 * time.Second

// AttachmentArchiver persists attachments flagged for backup.
type AttachmentArchiver interface {
	Archive(ctx context.Context, topic string, atts []entity.Attachment) ([]string, error)
}

// DispatchResult describes a successful dispatch.
type DispatchResult struct {
	// Record is nil when the archive write failed.
	Record      *entity.ArchiveRecord `json:"archived,omitempty"`
	Attachments []string              `json:"attachments"`
}

// Service runs the dispatch pipeline: resolve, deliver, archive, then
// persist backup attachments. Each call is one synchronous unit of work.
type Service struct {
	resolver       *Resolver
	archive        repository.ArchiveRepository
	attachments    AttachmentArchiver
	now            func() time.Time
	archiveTimeout time.Duration
	archiveRetry   retry.Config
	tracer         trace.Tracer
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now for archive timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithArchiveTimeout overrides the archive write timeout.
func WithArchiveTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.archiveTimeout = d
		}
	}
}

// WithArchiveRetry overrides the backoff of the archive write. The error
// classifier is always retry.IsRetryableWrite.
func WithArchiveRetry(cfg retry.Config) Option {
	return func(s *Service) { s.archiveRetry = cfg }
}

// WithTracer overrides the tracer used for dispatch spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// NewService wires the dispatch pipeline. attachments may be nil, in which
// case backup attachments are ignored.
func NewService(resolver *Resolver, archive repository.ArchiveRepository, attachments AttachmentArchiver, opts ...Option) *Service {
	s := &Service{
		resolver:       resolver,
		archive:        archive,
		attachments:    attachments,
		now:            time.Now,
		archiveTimeout: defaultArchiveTimeout,
		archiveRetry:   retry.DBConfig(),
		tracer:         tracing.GetTracer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch delivers msg through the handler of topic.
//
// Input is validated before any I/O. Every dispatch that reaches delivery
// leaves exactly one archive record, flagged send_failed when the channel
// fails; the delivery error is then returned as InternalError wrapping the
// channel error. A failed archive write is logged and never changes the
// outcome.
func (s *Service) Dispatch(ctx context.Context, topic string, msg *entity.Message) (*DispatchResult, error) {
	topic = entity.NormalizeTopic(topic)

	ctx, span := s.tracer.Start(ctx, "notify.Dispatch",
		trace.WithAttributes(attribute.String("notify.topic", topic)))
	defer span.End()
	logger := logging.WithRequestID(ctx, slog.Default()).With(slog.String("topic", topic))

	if err := s.validate(topic, msg); err != nil {
		return nil, s.reject(span, err)
	}

	res, err := s.resolver.Resolve(ctx, topic)
	if err != nil {
		return nil, s.reject(span, err)
	}

	ch := res.Channel
	span.SetAttributes(attribute.String("notify.channel", ch.Name()))
	RecordDispatch(ch.Name())

	attemptAt := s.now()
	start := time.Now()
	sendErr := ch.Send(ctx, msg)
	elapsed := time.Since(start)

	record := &entity.ArchiveRecord{
		Time:       attemptAt.Unix(),
		Topic:      topic,
		Title:      msg.Title,
		Content:    msg.Content,
		SendFailed: sendErr != nil,
	}
	if err := s.appendArchive(ctx, record); err != nil {
		RecordArchiveFailure()
		logger.Error("failed to archive notification",
			slog.Bool("send_failed", record.SendFailed),
			slog.Any("error", err))
		record = nil
	}

	if sendErr != nil {
		RecordFailure(ch.Name(), elapsed)
		span.RecordError(sendErr)
		span.SetStatus(codes.Error, "delivery failed")
		cause := entity.AsError(sendErr)
		logger.Log(ctx, cause.Level(), "notification delivery failed",
			slog.String("channel", ch.Name()),
			slog.String("kind", string(cause.Kind)),
			slog.Duration("elapsed", elapsed),
			slog.Any("error", sendErr))
		return nil, entity.Internal("failed to send notification", sendErr)
	}
	RecordSuccess(ch.Name(), elapsed)
	logger.Info("notification sent",
		slog.String("channel", ch.Name()),
		slog.Duration("elapsed", elapsed))

	result := &DispatchResult{Record: record, Attachments: []string{}}

	backups := msg.BackupAttachments()
	if len(backups) == 0 || s.attachments == nil {
		return result, nil
	}
	names, err := s.attachments.Archive(ctx, topic, backups)
	RecordAttachmentsArchived(len(names))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "attachment archive failed")
		logger.Error("failed to archive attachments",
			slog.Int("written", len(names)),
			slog.Any("error", err))
		return nil, entity.Internal("failed to archive attachments: "+entity.AsError(err).Msg, err)
	}
	result.Attachments = names
	return result, nil
}

func (s *Service) validate(topic string, msg *entity.Message) error {
	if topic == "" {
		return entity.MissingAttribute("Required attribute: topic")
	}
	return msg.Validate()
}

func (s *Service) reject(span trace.Span, err error) error {
	kind := entity.KindOf(err)
	RecordRejected(string(kind))
	span.SetAttributes(attribute.String("notify.rejected", string(kind)))
	if !kind.IsClientError() {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
	}
	return err
}

// appendArchive writes the record detached from the caller's cancellation,
// so an expired dispatch deadline cannot suppress it. Only failures that
// prove the row was not written are retried, so a dispatch never leaves
// two records.
func (s *Service) appendArchive(ctx context.Context, record *entity.ArchiveRecord) error {
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.archiveTimeout)
	defer cancel()
	cfg := s.archiveRetry
	cfg.Retryable = retry.IsRetryableWrite
	return retry.WithBackoff(actx, cfg, func() error {
		return s.archive.Append(actx, record)
	})
}
