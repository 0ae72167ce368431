package database

import (
	"context"
	"errors"

	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"go.mongodb.org/mongo-driver/mongo"
)

// Classify tags a driver error with the reason callers act on.
func Classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return reason.Wrap(reason.NotFound, op, err)
	case errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		mongo.IsNetworkError(err),
		mongo.IsTimeout(err):
		return reason.Wrap(reason.Unavailable, op, err)
	case mongo.IsDuplicateKeyError(err):
		return reason.Wrap(reason.Invalid, op, err)
	}
	return reason.Wrap(reason.Internal, op, err)
}
