package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dannyrandall/moviecast/internal/movies"
	"github.com/dannyrandall/moviecast/internal/store"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	movies map[int]movies.Record
	cast   []movies.Record

	getErr   error
	queryErr error

	calls []string
}

func (f *fakeStore) GetMovie(ctx context.Context, id int) (movies.Record, error) {
	f.calls = append(f.calls, "GetMovie")
	if f.getErr != nil {
		return nil, f.getErr
	}
	m, ok := f.movies[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return m, nil
}

func (f *fakeStore) QueryCast(ctx context.Context, movieID int, filter movies.CastFilter) ([]movies.Record, error) {
	f.calls = append(f.calls, "QueryCast")
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []movies.Record
	for _, c := range f.cast {
		if c["movieId"] == float64(movieID) && filter.MatchesRecord(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Records hold the value types attributevalue decodes into, so they survive
// a JSON round trip unchanged.
var (
	movie1 = movies.Record{
		"id":                float64(1),
		"title":             "Movie1",
		"original_language": "en",
		"vote_average":      7.5,
		"vote_count":        float64(0),
		"backdrop_path":     "/b.jpg",
		"video":             false,
		"genre_ids":         []any{float64(18), float64(53)},
	}

	actorA   = castMember(1, "Actor A", "Lead")
	actorB   = castMember(1, "Actor B", "Villain")
	actressL = castMember(1, "Lead Actress", "Sidekick")
	otherA   = castMember(2, "Actor A", "Lead")
)

func castMember(movieID float64, actor, role string) movies.Record {
	return movies.Record{"movieId": movieID, "actorName": actor, "roleName": role}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		movies: map[int]movies.Record{1: movie1},
		cast:   []movies.Record{actorA, actorB, actressL, otherA},
	}
}

func newTestLog() (*logrus.Entry, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	return logrus.NewEntry(logger), hook
}

func params(kv ...string) Request {
	p := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		p[kv[i]] = kv[i+1]
	}
	return Request{Params: p}
}

// decode renders resp the way the adapters do and decodes it into a
// generic JSON value.
func decode(t *testing.T, resp Response) map[string]any {
	t.Helper()
	log, _ := newTestLog()
	_, data := render(log, resp)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}
