// Package resilience provides fault tolerance patterns for outbound calls.
//
// The package supports:
//   - Circuit breakers per SMTP server and around the database handle
//   - Retry with exponential backoff and jitter for archive writes
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.SMTPConfig("smtp.example.com:587"))
//	_, err := cb.Execute(func() (interface{}, error) {
//	    return nil, session.Send(ctx, msg)
//	})
//
//	err = retry.WithBackoff(ctx, retry.DBConfig(), func() error {
//	    return archive.Append(ctx, rec)
//	})
package resilience
