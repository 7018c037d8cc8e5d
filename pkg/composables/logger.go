package composables

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/scoutsync/scoutsync/pkg/constants"
)

func WithLogger(ctx context.Context, logger *logrus.Logger) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger never returns nil; callers without a configured logger get a
// discard-free default rather than a panic.
func UseLogger(ctx context.Context) *logrus.Entry {
	switch typed := ctx.Value(constants.LoggerKey).(type) {
	case *logrus.Entry:
		return typed
	case *logrus.Logger:
		return logrus.NewEntry(typed)
	default:
		return logrus.NewEntry(logrus.StandardLogger())
	}
}
