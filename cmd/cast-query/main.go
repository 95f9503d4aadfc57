// Command cast-query is the Lambda function that lists the cast of a movie,
// optionally filtered by role or actor name prefix.
package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/dannyrandall/moviecast/internal/config"
	"github.com/dannyrandall/moviecast/internal/handlers"
	"github.com/dannyrandall/moviecast/internal/logging"
	"github.com/dannyrandall/moviecast/internal/otel"
	"github.com/dannyrandall/moviecast/internal/store"
	"github.com/sirupsen/logrus"
)

const name = "cast-query"

func main() {
	cfg, err := config.Load(config.MoviesTableEnv, config.CastTableEnv)
	if err != nil {
		logrus.Fatalf("invalid configuration: %s", err)
	}
	log := logging.New(cfg.LogLevel, true)

	// Timeout for setup functions
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)

	var flush func(context.Context) error
	if cfg.Tracing == config.TracingOTel {
		tp, err := otel.SetupTracer(ctx, config.FunctionName(name))
		if err != nil {
			log.Fatalf("unable to setup otel tracer: %s", err)
		}
		flush = tp.ForceFlush
	}

	awsCfg, err := store.LoadAWSConfig(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("unable to load aws config: %s", err)
	}

	records := store.NewDynamo(store.NewClient(awsCfg, cfg), cfg)
	fn := &handlers.Lambda{
		Name:    name,
		Handler: &handlers.Cast{Store: records},
		Logger:  log,
		Flush:   flush,
	}

	log.WithFields(logrus.Fields{
		"movies_table": cfg.MoviesTable,
		"cast_table":   cfg.CastTable,
		"tracing":      cfg.Tracing,
	}).Info("Starting handler")

	lambda.Start(fn.Invoke)
}
