package utils

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// LogAndReportSentryError logs the error and forwards it to sentry. It is
// the sink for errors that should be visible to operators but must not break
// the flow that produced them.
func LogAndReportSentryError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	LoggerFromContext(ctx).ErrorContext(ctx, err.Error())

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}
