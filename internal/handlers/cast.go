package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dannyrandall/moviecast/internal/movies"
	"github.com/dannyrandall/moviecast/internal/store"
	"github.com/sirupsen/logrus"
)

// Cast lists the cast of a movie, optionally narrowed by a role or actor
// name prefix and optionally joined with the movie itself.
type Cast struct {
	Store RecordStore
}

type castQuery struct {
	movieID   int
	filter    movies.CastFilter
	withMovie bool
}

func (c *Cast) Handle(ctx context.Context, log *logrus.Entry, req Request) Response {
	q, problem := parseCastQuery(req)
	if problem != "" {
		return Response{StatusCode: http.StatusBadRequest, Body: message{Message: problem}}
	}

	log = log.WithFields(logrus.Fields{
		"movie_id": q.movieID,
		"filter":   q.filter.Kind.String(),
	})
	log.Debugf("Querying cast with prefix %q", q.filter.Prefix)

	cast, err := c.Store.QueryCast(ctx, q.movieID, q.filter)
	if err != nil {
		return internalError(log, fmt.Errorf("query cast of movie %d: %w", q.movieID, err))
	}
	if cast == nil {
		cast = []movies.Record{}
	}

	body := map[string]any{"cast": cast}

	if q.withMovie {
		movie, err := c.Store.GetMovie(ctx, q.movieID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			body["movie"] = nil
		case err != nil:
			return internalError(log, fmt.Errorf("get movie %d: %w", q.movieID, err))
		default:
			body["movie"] = movie
		}
	}

	log.Infof("Found %d cast members", len(cast))
	return Response{StatusCode: http.StatusOK, Body: body}
}

// parseCastQuery validates the request. A non-empty problem is the message
// to send back with a 400.
func parseCastQuery(req Request) (castQuery, string) {
	if _, ok := req.Param("movieId"); !ok {
		return castQuery{}, "Missing movieId parameter"
	}

	id, ok := parseMovieID(req)
	if !ok {
		return castQuery{}, "Invalid movieId parameter"
	}

	movie, _ := req.Param("movie")
	return castQuery{
		movieID:   id,
		filter:    selectFilter(req),
		withMovie: movie == "true",
	}, ""
}

// selectFilter picks the cast filter. roleName takes precedence over
// actorName when both are given.
func selectFilter(req Request) movies.CastFilter {
	if role, ok := req.Param("roleName"); ok {
		return movies.RoleFilter(role)
	}
	if actor, ok := req.Param("actorName"); ok {
		return movies.ActorFilter(actor)
	}
	return movies.CastFilter{Kind: movies.NoFilter}
}
