package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dannyrandall/moviecast/internal/movies"
	"github.com/dannyrandall/moviecast/internal/store"
	"github.com/sirupsen/logrus"
)

type movieMessage struct {
	Message string `json:"Message"`
}

type movieData struct {
	Data movies.Record `json:"data"`
}

// Movie looks up a single movie by the movieId query parameter.
type Movie struct {
	Store RecordStore
}

func (m *Movie) Handle(ctx context.Context, log *logrus.Entry, req Request) Response {
	id, ok := parseMovieID(req)
	if !ok {
		return Response{StatusCode: http.StatusBadRequest, Body: movieMessage{Message: "Missing movie Id"}}
	}

	log = log.WithField("movie_id", id)
	log.Debugf("Getting movie %d", id)

	movie, err := m.Store.GetMovie(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info("No movie found")
		return Response{StatusCode: http.StatusNotFound, Body: movieMessage{Message: "Invalid movie Id"}}
	case err != nil:
		return internalError(log, fmt.Errorf("get movie %d: %w", id, err))
	}

	log.Infof("Got movie %q", movie.Str("title"))
	return Response{StatusCode: http.StatusOK, Body: movieData{Data: movie}}
}

// parseMovieID returns the movieId parameter if it is a positive integer.
func parseMovieID(req Request) (int, bool) {
	raw, ok := req.Param("movieId")
	if !ok {
		return 0, false
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
