package lambda

import (
	"context"

	"github.com/sirupsen/logrus"
)

type logFieldsKey struct{}

// ContextWithLogFields attaches per-invocation log fields to ctx
func ContextWithLogFields(ctx context.Context, fields logrus.Fields) context.Context {
	merged := LogFields(ctx)
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, logFieldsKey{}, merged)
}

// LogFields returns a copy of the per-invocation log fields carried by ctx
func LogFields(ctx context.Context) logrus.Fields {
	fields := logrus.Fields{}
	if stored, ok := ctx.Value(logFieldsKey{}).(logrus.Fields); ok {
		for k, v := range stored {
			fields[k] = v
		}
	}
	return fields
}

// LoggerFrom returns log tagged with the invocation fields carried by ctx
func LoggerFrom(ctx context.Context, log logrus.FieldLogger) *logrus.Entry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return log.WithFields(LogFields(ctx))
}
