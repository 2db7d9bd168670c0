package notify

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/infra/notifier"
	"notify-svc/internal/resilience/circuitbreaker"
)

// EmailChannelOptions configures the email channel factory.
type EmailChannelOptions struct {
	// Limiter is shared by every email channel built by the factory.
	Limiter *notifier.RateLimiter
	// Timeout overrides notifier.DefaultTimeout when positive.
	Timeout time.Duration
	// Breakers enables one circuit breaker per SMTP server.
	Breakers bool
}

// EmailChannel adapts notifier.EmailNotifier to Channel.
type EmailChannel struct {
	n *notifier.EmailNotifier
}

func (c *EmailChannel) Name() string { return string(entity.HandlerTypeEmail) }

func (c *EmailChannel) Send(ctx context.Context, msg *entity.Message) error {
	return c.n.Send(ctx, msg)
}

// NewEmailChannelFactory returns the factory registered for HandlerTypeEmail.
// Channels are built per dispatch, so breakers are kept per server here to
// carry state across dispatches.
func NewEmailChannelFactory(opts EmailChannelOptions) ChannelFactory {
	breakers := &breakerSet{byAddr: make(map[string]*circuitbreaker.CircuitBreaker)}

	return func(settings entity.Settings) (Channel, error) {
		cfg, err := notifier.ParseEmailConfig(settings)
		if err != nil {
			return nil, err
		}

		var emailOpts []notifier.EmailOption
		if opts.Limiter != nil {
			emailOpts = append(emailOpts, notifier.WithRateLimiter(opts.Limiter))
		}
		if opts.Timeout > 0 {
			emailOpts = append(emailOpts, notifier.WithTimeout(opts.Timeout))
		}
		if opts.Breakers {
			addr := net.JoinHostPort(cfg.Server, strconv.Itoa(cfg.Port))
			emailOpts = append(emailOpts, notifier.WithCircuitBreaker(breakers.get(addr)))
		}

		n, err := notifier.NewEmailNotifier(settings, emailOpts...)
		if err != nil {
			return nil, err
		}
		return &EmailChannel{n: n}, nil
	}
}

type breakerSet struct {
	mu     sync.Mutex
	byAddr map[string]*circuitbreaker.CircuitBreaker
}

func (b *breakerSet) get(addr string) *circuitbreaker.CircuitBreaker {
	b.mu.Lock()
	defer b.mu.Unlock()
	cb, ok := b.byAddr[addr]
	if !ok {
		cb = circuitbreaker.New(circuitbreaker.SMTPConfig(addr))
		b.byAddr[addr] = cb
	}
	return cb
}
