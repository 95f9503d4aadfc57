package main

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/dannyrandall/moviecast/internal/config"
	"github.com/dannyrandall/moviecast/internal/handlers"
	"github.com/dannyrandall/moviecast/internal/logging"
	"github.com/dannyrandall/moviecast/internal/otel"
	"github.com/dannyrandall/moviecast/internal/store"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(config.MoviesTableEnv, config.CastTableEnv)
	if err != nil {
		logrus.Fatalf("invalid configuration: %s", err)
	}
	log := logging.New(cfg.LogLevel, false)
	log.Printf("Using %q as the movies table and %q as the cast table", cfg.MoviesTable, cfg.CastTable)

	// Timeout for setup functions
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	svcName := config.ServiceName("movies")
	if cfg.Tracing == config.TracingOTel {
		if _, err := otel.SetupTracer(ctx, svcName); err != nil {
			log.Fatalf("unable to setup otel tracer: %s", err)
		}
	}

	awsCfg, err := store.LoadAWSConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("unable to load aws config: %s", err)
	}
	records := store.NewDynamo(store.NewClient(awsCfg, cfg), cfg)

	traced := func(name string, h http.Handler) http.Handler {
		switch cfg.Tracing {
		case config.TracingOTel:
			return otelhttp.NewHandler(h, name)
		case config.TracingXRay:
			return xray.Handler(xray.NewFixedSegmentNamer(svcName), h)
		default:
			return h
		}
	}

	// Setup HTTP server
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		log.Printf("No handler registered for path %q", r.URL.String())
		http.NotFound(w, r)
	})

	// Simple health check endpoint
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// API Endpoints
	mux.Handle("/movies/api/movie", traced("movie", &handlers.HTTP{
		Handler: &handlers.Movie{Store: records},
		Logger:  log,
	}))
	mux.Handle("/movies/api/cast", traced("cast", &handlers.HTTP{
		Handler: &handlers.Cast{Store: records},
		Logger:  log,
	}))

	// Run HTTP Server
	log.Printf("Starting server on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("error serving: %s", err)
	}
}
