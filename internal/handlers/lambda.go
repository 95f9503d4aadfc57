package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/dannyrandall/moviecast/internal/logging"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Lambda serves a Handler behind a Lambda Function URL.
type Lambda struct {
	Name    string
	Handler Handler
	Logger  *logrus.Logger
	Tracer  trace.Tracer

	// Flush, if set, is called at the end of every invocation so that spans
	// are exported before the execution environment is frozen.
	Flush func(context.Context) error
}

func (l *Lambda) Invoke(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	tracer := l.Tracer
	if tracer == nil {
		tracer = otel.Tracer("")
	}
	ctx, span := tracer.Start(ctx, l.Name, trace.WithSpanKind(trace.SpanKindServer))

	log := logging.WithRequest(ctx, l.Logger)
	defer func() {
		span.End()
		if l.Flush == nil {
			return
		}
		if err := l.Flush(ctx); err != nil {
			log.WithError(err).Warn("unable to flush traces")
		}
	}()

	if raw, err := json.Marshal(event); err == nil {
		log.Infof("Event: %s", raw)
	}

	code, body := render(log, l.Handler.Handle(ctx, log, Request{Params: event.QueryStringParameters}))
	if code >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, fmt.Sprintf("status code %d", code))
	}

	return events.LambdaFunctionURLResponse{
		StatusCode: code,
		Headers:    map[string]string{"content-type": "application/json"},
		Body:       string(body),
	}, nil
}
