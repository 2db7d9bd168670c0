// Package logging provides structured logging utilities with context propagation.
//
// Example usage:
//
//	logger := logging.NewLogger(logging.OptionsFromEnv())
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("dispatching notification")
//	}
package logging
