package logging

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// LoggingWrapper adapts a huma handler so each request gets its own LogData in
// the context, a duration timing, and a Complete or Error log line.
func LoggingWrapper[I, O any](
	loggingName string,
	log *logrus.Logger,
	handler func(context.Context, *I) (*O, error),
) func(context.Context, *I) (*O, error) {
	return func(ctx context.Context, input *I) (*O, error) {
		log.Debugf("Handler.%v.Start", loggingName)

		logData := NewLogData(log)
		endTimer := logData.AddTiming("duration")

		output, err := handler(WithLogData(ctx, logData), input)
		endTimer()
		if err != nil {
			entry := logData.Log().WithError(err)
			var statusErr huma.StatusError
			if errors.As(err, &statusErr) {
				entry = entry.WithField("status", statusErr.GetStatus())
				if statusErr.GetStatus() < 500 {
					entry.Warnf("Handler.%v.Error", loggingName)
					return output, err
				}
			}
			entry.Errorf("Handler.%v.Error", loggingName)
			return output, err
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
		return output, nil
	}
}
