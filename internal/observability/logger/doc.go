// Package logger provides a singleton Zap logger with context-based scoping.
//
// Initialization (once, in main):
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
//	defer logger.Sync()
//
// In handlers and services, always prefer the context-scoped logger so request
// fields (request_id, etc.) injected by middleware are carried along:
//
//	log := logger.From(ctx)
//	log.Warn("state parameter mismatch", logger.Provider(id))
//
// Without a context the singleton is the fallback:
//
//	logger.L().Info("listening", logger.String("addr", addr))
package logger
