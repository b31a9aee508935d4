package serviceutil

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// SignalContext returns a context that lives until Ctrl+C is pressed or the
// process is asked to terminate.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

var exit = os.Exit

// Fatal logs err and exits with status 1.
func Fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	exit(1)
}
