// Package middleware holds the MTProto invoke middlewares of the bot
// client: transient error retry, flood wait handling and an outgoing rate
// limit.
package middleware

import (
	"time"

	"github.com/gotd/contrib/middleware/floodwait"
	"github.com/gotd/contrib/middleware/ratelimit"
	"github.com/gotd/td/telegram"
	"github.com/mediaindex/mediaindex-bot/client/middleware/retry"
	"golang.org/x/time/rate"
)

const (
	callInterval = 100 * time.Millisecond
	callBurst    = 5
)

func NewDefaultMiddlewares(rpcRetry int) []telegram.Middleware {
	if rpcRetry <= 0 {
		rpcRetry = 1
	}
	return []telegram.Middleware{
		retry.New(rpcRetry),
		floodwait.NewSimpleWaiter().WithMaxRetries(uint(rpcRetry)),
		ratelimit.New(rate.Every(callInterval), callBurst),
	}
}
