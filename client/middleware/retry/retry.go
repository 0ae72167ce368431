// Package retry repeats Telegram calls that failed with a server side
// error known to be transient.
package retry

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gotd/td/bin"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

// Transient lists the RPC error types that are worth another attempt.
var Transient = []string{
	"Timedout",
	"No workers running",
	"RPC_CALL_FAIL",
	"RPC_MCGET_FAIL",
	"WORKER_BUSY_TOO_LONG_RETRY",
	"memory limit exit",
}

type retry struct {
	attempts int
	types    []string
}

func (r retry) Handle(next tg.Invoker) telegram.InvokeFunc {
	return func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		var last error
		for attempt := 1; attempt <= r.attempts; attempt++ {
			err := next.Invoke(ctx, input, output)
			if err == nil {
				return nil
			}
			if !tgerr.Is(err, r.types...) {
				return err
			}
			last = err
			log.FromContext(ctx).WithPrefix("telegram").Debug("Retrying call", "attempt", attempt, "error", err)
		}
		return fmt.Errorf("giving up after %d attempts: %w", r.attempts, last)
	}
}

// New returns a middleware making up to attempts calls when the error is
// one of Transient, or of the extra types given.
func New(attempts int, extra ...string) telegram.Middleware {
	if attempts < 1 {
		attempts = 1
	}
	return retry{attempts: attempts, types: append(append([]string{}, Transient...), extra...)}
}
