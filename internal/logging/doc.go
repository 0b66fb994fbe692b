// Package logging provides structured logging on zap with a runtime
// adjustable severity filter.
//
// Create a logger from config:
//
//	logger, err := logging.New(logging.Config{Level: logging.Info, Format: "console"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("loaded", zap.String("path", path))
//	logger.SetFilterSeverity(logging.Debug)
//
// Library code takes a *zap.Logger (see Logger.Underlying) and defaults to a
// no-op logger.
package logging
