// Package handlers implements the movie and cast read endpoints independently
// of how they are delivered (Lambda Function URL or net/http).
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dannyrandall/moviecast/internal/movies"
	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"
)

// RecordStore is the read side of the movie and cast tables. Records are
// returned with every stored attribute.
type RecordStore interface {
	GetMovie(ctx context.Context, id int) (movies.Record, error)
	QueryCast(ctx context.Context, movieID int, filter movies.CastFilter) ([]movies.Record, error)
}

// Request carries the query string parameters of a request. A key that is
// present with an empty value is kept.
type Request struct {
	Params map[string]string
}

// Param returns the value of a parameter, treating an empty value as absent.
func (r Request) Param(name string) (string, bool) {
	v, ok := r.Params[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Response is a status code and a value to be rendered as JSON.
type Response struct {
	StatusCode int
	Body       any
}

type Handler interface {
	Handle(ctx context.Context, log *logrus.Entry, req Request) Response
}

type message struct {
	Message string `json:"message"`
}

const internalErrorCode = "INTERNAL_ERROR"

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Reference string `json:"reference"`
}

// internalError logs err with a fresh reference id and returns a 500 that
// only exposes the reference.
func internalError(log *logrus.Entry, err error) Response {
	ref := ksuid.New().String()
	log.WithError(err).WithField("reference", ref).Error("returning internal error")

	return Response{
		StatusCode: http.StatusInternalServerError,
		Body: errorBody{Error: errorDetail{
			Code:      internalErrorCode,
			Message:   "internal server error",
			Reference: ref,
		}},
	}
}

// render encodes the response body. A body that cannot be encoded turns
// into a 500.
func render(log *logrus.Entry, resp Response) (int, []byte) {
	data, err := json.Marshal(resp.Body)
	if err == nil {
		return resp.StatusCode, data
	}

	resp = internalError(log, err)
	data, _ = json.Marshal(resp.Body)
	return resp.StatusCode, data
}
