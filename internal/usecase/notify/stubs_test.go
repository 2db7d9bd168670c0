package notify

import (
	"context"
	"sync"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/repository"
)

/*────────────────────  インメモリスタブ  ────────────────────*/

type stubHandlers struct {
	data map[string]*entity.Handler
	err  error
}

func (s *stubHandlers) Upsert(_ context.Context, h *entity.Handler) error {
	if s.err != nil {
		return s.err
	}
	if s.data == nil {
		s.data = map[string]*entity.Handler{}
	}
	s.data[h.Topic] = h
	return nil
}

func (s *stubHandlers) Get(_ context.Context, topic string) (*entity.Handler, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[topic], nil
}

func (s *stubHandlers) ListByType(_ context.Context, t entity.HandlerType) ([]*entity.Handler, error) {
	var out []*entity.Handler
	for _, h := range s.data {
		if h.Type == t {
			out = append(out, h)
		}
	}
	return out, s.err
}

type stubSettings struct {
	data  map[entity.HandlerType]*entity.GlobalSetting
	err   error
	calls int
}

func (s *stubSettings) Get(_ context.Context, t entity.HandlerType) (*entity.GlobalSetting, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.data[t], nil
}

func (s *stubSettings) Put(_ context.Context, gs *entity.GlobalSetting) error {
	if s.data == nil {
		s.data = map[entity.HandlerType]*entity.GlobalSetting{}
	}
	s.data[gs.Type] = gs
	return s.err
}

type stubArchive struct {
	mu           sync.Mutex
	records      []*entity.ArchiveRecord
	failures     []error // Append が順に返すエラー
	afterCommit  []error // 行を保存した後に返すエラー
	appendCtxErr error
	listErr      error
	lastQuery    repository.HistoryQuery
	deleted      bool
}

func (s *stubArchive) Append(ctx context.Context, r *entity.ArchiveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendCtxErr = ctx.Err()
	if len(s.failures) > 0 {
		err := s.failures[0]
		s.failures = s.failures[1:]
		if err != nil {
			return err
		}
	}
	r.ID = int64(len(s.records) + 1)
	s.records = append(s.records, r)
	if len(s.afterCommit) > 0 {
		err := s.afterCommit[0]
		s.afterCommit = s.afterCommit[1:]
		return err
	}
	return nil
}

func (s *stubArchive) ListByTopic(_ context.Context, topic string) ([]*entity.ArchiveRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*entity.ArchiveRecord
	for _, r := range s.records {
		if r.Topic == topic {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubArchive) ListByTopicAndTime(ctx context.Context, topic string, _ entity.TimeRange) ([]*entity.ArchiveRecord, error) {
	return s.ListByTopic(ctx, topic)
}

func (s *stubArchive) ListByTime(_ context.Context, q repository.HistoryQuery) ([]*entity.ArchiveRecord, error) {
	s.lastQuery = q
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.records, nil
}

func (s *stubArchive) DeleteAll(_ context.Context) error {
	if s.listErr != nil {
		return s.listErr
	}
	s.deleted = true
	s.records = nil
	return nil
}

type stubChannel struct {
	err   error
	calls int
	got   *entity.Message
}

func (c *stubChannel) Name() string { return "stub" }

func (c *stubChannel) Send(_ context.Context, msg *entity.Message) error {
	c.calls++
	c.got = msg
	return c.err
}

type stubArchiver struct {
	names []string
	err   error
	topic string
	got   []entity.Attachment
}

func (a *stubArchiver) Archive(_ context.Context, topic string, atts []entity.Attachment) ([]string, error) {
	a.topic = topic
	a.got = atts
	return a.names, a.err
}

// registryWith returns a registry whose email factory always yields ch and
// records the settings it was built with.
func registryWith(ch Channel, seen *entity.Settings) *Registry {
	reg := NewRegistry()
	reg.Register(entity.HandlerTypeEmail, func(s entity.Settings) (Channel, error) {
		if seen != nil {
			*seen = s
		}
		return ch, nil
	})
	return reg
}
