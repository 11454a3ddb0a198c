// Package logger builds the slog loggers used by the strategy packages and
// the login command.
//
// Loggers write JSON to stdout. Context extractors add request-scoped
// attributes (strategy name, request ID) to every record, and NewWithSentry
// fans warnings and errors out to Sentry when a DSN is configured:
//
//	log := logger.NewWithSentry(cfg.Log, cfg.Sentry, logger.StrategyExtractor())
//	ctx := logger.WithStrategy(ctx, "dropbox-oauth2")
//	log.WarnContext(ctx, "oauth handshake failed")
//	// {"level":"WARN","msg":"oauth handshake failed","strategy":"dropbox-oauth2"}
//
// Library packages default to NewNope so nothing is written unless the
// caller injects a logger.
package logger
