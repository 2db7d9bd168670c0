// Package notifier delivers notifications over SMTP.
//
// An EmailNotifier is built from an opaque settings blob, validated against a
// JSON schema, and makes a single delivery attempt per Send. Failures are
// reported with the entity error taxonomy so callers can tell rejected
// credentials from transport problems.
package notifier

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/smtp"
	"net/textproto"
	"os"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/observability/logging"
	"notify-svc/internal/resilience/circuitbreaker"
)

// DefaultTimeout bounds the whole SMTP session, dial included.
const DefaultTimeout = 10 * time.Second

const (
	msgConnectFailed = "failed to connect to SMTP server"
	msgSendFailed    = "something went wrong with sending the email"
	msgAuthFailed    = "Failed to authenticate with SMTP server"
)

// authRejectCodes are SMTP replies that mean the credentials were refused.
var authRejectCodes = map[int]bool{
	454: true, // temporary authentication failure
	530: true, // authentication required
	534: true, // mechanism too weak
	535: true, // credentials invalid
}

// EmailNotifier sends a message to a fixed SMTP server and recipient list.
type EmailNotifier struct {
	cfg       EmailConfig
	timeout   time.Duration
	tlsConfig *tls.Config
	limiter   *RateLimiter
	breaker   *circuitbreaker.CircuitBreaker
	now       func() time.Time
}

// EmailOption customizes an EmailNotifier.
type EmailOption func(*EmailNotifier)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) EmailOption {
	return func(n *EmailNotifier) {
		if d > 0 {
			n.timeout = d
		}
	}
}

// WithTLSConfig sets the TLS configuration used for implicit TLS and STARTTLS.
// ServerName defaults to the configured server.
func WithTLSConfig(c *tls.Config) EmailOption {
	return func(n *EmailNotifier) { n.tlsConfig = c }
}

// WithRateLimiter makes Send wait for a token before dialing.
func WithRateLimiter(l *RateLimiter) EmailOption {
	return func(n *EmailNotifier) { n.limiter = l }
}

// WithCircuitBreaker short-circuits Send while the server keeps failing at
// the transport level. Authentication and validation failures do not count.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) EmailOption {
	return func(n *EmailNotifier) { n.breaker = cb }
}

// NewEmailNotifier validates settings and builds a notifier.
func NewEmailNotifier(settings entity.Settings, opts ...EmailOption) (*EmailNotifier, error) {
	cfg, err := ParseEmailConfig(settings)
	if err != nil {
		return nil, err
	}
	n := &EmailNotifier{
		cfg:     cfg,
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Config returns the validated configuration.
func (n *EmailNotifier) Config() EmailConfig {
	return n.cfg
}

// Send makes one delivery attempt. Input problems are reported before any
// network I/O happens.
func (n *EmailNotifier) Send(ctx context.Context, msg *entity.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if n.cfg.Auth && (n.cfg.User == "" || n.cfg.Password == "") {
		return entity.MissingAttribute("Required attributes for authentication: user and password")
	}
	body, err := buildMessage(n.cfg, msg, n.now())
	if err != nil {
		return err
	}

	if n.limiter != nil {
		if err := n.limiter.Allow(ctx); err != nil {
			return entity.Internal(msgConnectFailed, err)
		}
	}

	logger := logging.WithRequestID(ctx, slog.Default())
	start := time.Now()
	err = n.guarded(func() error { return n.deliver(ctx, body) })
	if err != nil {
		logger.Debug("smtp delivery failed",
			slog.String("server", n.cfg.Server),
			slog.String("kind", string(entity.KindOf(err))),
			slog.Duration("elapsed", time.Since(start)))
		return err
	}
	logger.Debug("smtp delivery succeeded",
		slog.String("server", n.cfg.Server),
		slog.Int("recipients", len(n.cfg.ToAddrs)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// guarded runs fn through the circuit breaker when one is configured.
// Only transport failures are reported to the breaker.
func (n *EmailNotifier) guarded(fn func() error) error {
	if n.breaker == nil {
		return fn()
	}
	var sendErr error
	_, err := n.breaker.Execute(func() (interface{}, error) {
		sendErr = fn()
		if entity.KindOf(sendErr) == entity.KindInternal {
			return nil, sendErr
		}
		return nil, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return entity.Internal(msgConnectFailed, err)
	}
	return sendErr
}

func (n *EmailNotifier) deliver(ctx context.Context, body []byte) error {
	deadline := time.Now().Add(n.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	conn, err := n.dial(ctx, deadline)
	if err != nil {
		return entity.Internal(msgConnectFailed, err)
	}
	_ = conn.SetDeadline(deadline)
	// ctx のキャンセルで進行中の I/O を即座に打ち切る
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	client, err := smtp.NewClient(conn, n.cfg.Server)
	if err != nil {
		_ = conn.Close()
		return entity.Internal(msgConnectFailed, err)
	}
	defer func() { _ = client.Close() }()

	if n.cfg.StartTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			return entity.Internal(msgConnectFailed, errors.New("server does not advertise STARTTLS"))
		}
		if err := client.StartTLS(n.tls()); err != nil {
			return entity.Internal(msgConnectFailed, err)
		}
	}

	if n.cfg.Auth {
		if err := client.Auth(newPlainAuth(n.cfg.User, n.cfg.Password)); err != nil {
			return classifyAuth(err)
		}
	}

	if err := client.Mail(n.cfg.FromAddr); err != nil {
		return classify(err)
	}
	for _, to := range n.cfg.ToAddrs {
		if err := client.Rcpt(to); err != nil {
			return classify(err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return classify(err)
	}
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return classify(err)
	}
	if err := w.Close(); err != nil {
		return classify(err)
	}
	if err := client.Quit(); err != nil {
		return classify(err)
	}
	return nil
}

func (n *EmailNotifier) dial(ctx context.Context, deadline time.Time) (net.Conn, error) {
	addr := net.JoinHostPort(n.cfg.Server, strconv.Itoa(n.cfg.Port))
	dialer := &net.Dialer{Deadline: deadline}
	if n.cfg.SSL && !n.cfg.StartTLS {
		td := &tls.Dialer{NetDialer: dialer, Config: n.tls()}
		return td.DialContext(ctx, "tcp", addr)
	}
	return dialer.DialContext(ctx, "tcp", addr)
}

func (n *EmailNotifier) tls() *tls.Config {
	if n.tlsConfig != nil {
		c := n.tlsConfig.Clone()
		if c.ServerName == "" {
			c.ServerName = n.cfg.Server
		}
		return c
	}
	return &tls.Config{ServerName: n.cfg.Server, MinVersion: tls.VersionTLS12}
}

// classifyAuth maps a failed AUTH exchange onto the taxonomy.
func classifyAuth(err error) error {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) && authRejectCodes[tpErr.Code] {
		return entity.AuthenticationFailure(msgAuthFailed, err)
	}
	return classify(err)
}

// classify maps an SMTP session error onto the taxonomy. Protocol replies,
// network and TLS errors are InternalError; anything else is unclassified.
func classify(err error) error {
	var (
		tpErr   *textproto.Error
		netErr  net.Error
		recErr  tls.RecordHeaderError
		certErr *tls.CertificateVerificationError
	)
	switch {
	case errors.As(err, &tpErr),
		errors.As(err, &netErr),
		errors.As(err, &recErr),
		errors.As(err, &certErr),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, os.ErrDeadlineExceeded):
		return entity.Internal(msgSendFailed, err)
	default:
		return entity.Unclassified(err)
	}
}
