package logging

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/dannyrandall/moviecast/internal/otel"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// New returns a logger writing to stderr. Lambda output is JSON so that
// CloudWatch can index the fields; everything else gets text.
func New(level string, json bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if json {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}

// WithRequest returns an entry tagged with the trace and Lambda request ids
// found in ctx.
func WithRequest(ctx context.Context, logger *logrus.Logger) *logrus.Entry {
	fields := logrus.Fields{}
	if id := traceID(ctx); id != "" {
		fields["xray_trace_id"] = id
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields["aws_request_id"] = lc.AwsRequestID
	}
	return logger.WithFields(fields)
}

// traceID prefers the OpenTelemetry span and falls back to the X-Ray segment
// that xray.Handler puts in the context.
func traceID(ctx context.Context) string {
	if id := otel.XRayTraceID(trace.SpanFromContext(ctx)); id != "" {
		return id
	}

	seg := xray.GetSegment(ctx)
	if seg == nil {
		return ""
	}
	if seg.ParentSegment != nil {
		seg = seg.ParentSegment
	}
	return seg.TraceID
}
