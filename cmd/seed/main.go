// Command seed loads the movie and cast tables from seed files. It is run
// once per deployment, after the tables are created.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/dannyrandall/moviecast/internal/config"
	"github.com/dannyrandall/moviecast/internal/seed"
	"github.com/dannyrandall/moviecast/internal/store"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		moviesPath = flag.String("movies", "./seed/movies.json", "Movies seed file (JSON or YAML)")
		castPath   = flag.String("cast", "./seed/cast.json", "Cast seed file (JSON or YAML)")
		timeout    = flag.Duration("timeout", 5*time.Minute, "Overall timeout")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(config.MoviesTableEnv, config.CastTableEnv)
	if err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	ms, err := seed.ReadMoviesFile(*moviesPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to read movies")
	}
	cs, err := seed.ReadCastFile(*castPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to read cast")
	}

	log := logger.WithFields(logrus.Fields{
		"movies_table": cfg.MoviesTable,
		"cast_table":   cfg.CastTable,
		"movies":       len(ms),
		"cast":         len(cs),
	})
	log.Info("Seeding tables")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	awsCfg, err := store.LoadAWSConfig(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to load aws config")
	}

	loader := &seed.Loader{
		Client:      store.NewClient(awsCfg, cfg),
		MoviesTable: cfg.MoviesTable,
		CastTable:   cfg.CastTable,
		Log:         log,
	}
	if err := loader.Load(ctx, ms, cs); err != nil {
		log.WithError(err).Fatal("Failed to seed tables")
	}

	log.Info("Seeding complete")
}
