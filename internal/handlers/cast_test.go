package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dannyrandall/moviecast/internal/movies"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastBadRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		message string
	}{
		{name: "no parameters", req: Request{}, message: "Missing movieId parameter"},
		{name: "only filters", req: params("roleName", "Le", "movie", "true"), message: "Missing movieId parameter"},
		{name: "empty movieId", req: params("movieId", ""), message: "Missing movieId parameter"},
		{name: "not a number", req: params("movieId", "one"), message: "Invalid movieId parameter"},
		{name: "negative", req: params("movieId", "-1"), message: "Invalid movieId parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeStore()
			h := &Cast{Store: s}
			log, _ := newTestLog()

			resp := h.Handle(context.Background(), log, tt.req)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, map[string]any{"message": tt.message}, decode(t, resp))
			assert.Empty(t, s.calls)
		})
	}
}

func TestSelectFilter(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want movies.CastFilter
	}{
		{name: "none", req: params("movieId", "1"), want: movies.CastFilter{Kind: movies.NoFilter}},
		{name: "role", req: params("roleName", "Le"), want: movies.RoleFilter("Le")},
		{name: "actor", req: params("actorName", "Act"), want: movies.ActorFilter("Act")},
		{name: "role wins over actor", req: params("roleName", "Le", "actorName", "Act"), want: movies.RoleFilter("Le")},
		{name: "empty role falls through to actor", req: params("roleName", "", "actorName", "Act"), want: movies.ActorFilter("Act")},
		{name: "empty values are no filter", req: params("roleName", "", "actorName", ""), want: movies.CastFilter{Kind: movies.NoFilter}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectFilter(tt.req))
		})
	}
}

func TestCastQuery(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []movies.Record
	}{
		{
			name: "all cast of the movie",
			req:  params("movieId", "1"),
			want: []movies.Record{actorA, actorB, actressL},
		},
		{
			name: "role prefix",
			req:  params("movieId", "1", "roleName", "Le"),
			want: []movies.Record{actorA},
		},
		{
			name: "actor prefix",
			req:  params("movieId", "1", "actorName", "Actor"),
			want: []movies.Record{actorA, actorB},
		},
		{
			name: "role wins over actor",
			req:  params("movieId", "1", "roleName", "Vill", "actorName", "Lead"),
			want: []movies.Record{actorB},
		},
		{
			name: "no match is an empty list",
			req:  params("movieId", "1", "roleName", "Narrator"),
			want: []movies.Record{},
		},
		{
			name: "unknown movie is an empty list",
			req:  params("movieId", "42"),
			want: []movies.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeStore()
			h := &Cast{Store: s}
			log, _ := newTestLog()

			resp := h.Handle(context.Background(), log, tt.req)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			body := resp.Body.(map[string]any)
			assert.Equal(t, tt.want, body["cast"])
			assert.NotContains(t, body, "movie")
			assert.Equal(t, []string{"QueryCast"}, s.calls)
		})
	}
}

func TestCastScenario(t *testing.T) {
	h := &Cast{Store: newFakeStore()}
	log, _ := newTestLog()

	resp := h.Handle(context.Background(), log, params("movieId", "1", "roleName", "Le"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{
		"cast": []any{
			map[string]any{"movieId": float64(1), "actorName": "Actor A", "roleName": "Lead"},
		},
	}, decode(t, resp))
}

func TestCastKeepsStoredAttributes(t *testing.T) {
	s := newFakeStore()
	lead := castMember(3, "Actor D", "Lead")
	lead["roleDescription"] = "The hero."
	lead["billing"] = float64(1)
	s.cast = []movies.Record{lead}
	h := &Cast{Store: s}
	log, _ := newTestLog()

	resp := h.Handle(context.Background(), log, params("movieId", "3"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{map[string]any(lead)}, decode(t, resp)["cast"])
}

func TestCastWithMovie(t *testing.T) {
	s := newFakeStore()
	h := &Cast{Store: s}
	log, _ := newTestLog()

	resp := h.Handle(context.Background(), log, params("movieId", "1", "movie", "true"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := resp.Body.(map[string]any)
	assert.Equal(t, movie1, body["movie"])
	assert.Equal(t, map[string]any(movie1), decode(t, resp)["movie"])
	assert.Equal(t, []string{"QueryCast", "GetMovie"}, s.calls, "movie lookup runs after the cast query")
}

func TestCastWithMissingMovie(t *testing.T) {
	s := newFakeStore()
	s.cast = append(s.cast, castMember(7, "Orphan", "Ghost"))
	h := &Cast{Store: s}
	log, _ := newTestLog()

	resp := h.Handle(context.Background(), log, params("movieId", "7", "movie", "true"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	require.Contains(t, body, "movie")
	assert.Nil(t, body["movie"])
	assert.Len(t, body["cast"], 1)
}

func TestCastMovieFlagMustBeTrue(t *testing.T) {
	for _, v := range []string{"", "false", "TRUE", "1", "yes"} {
		t.Run(v, func(t *testing.T) {
			s := newFakeStore()
			h := &Cast{Store: s}
			log, _ := newTestLog()

			resp := h.Handle(context.Background(), log, params("movieId", "1", "movie", v))
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.NotContains(t, decode(t, resp), "movie")
			assert.Equal(t, []string{"QueryCast"}, s.calls)
		})
	}
}

func TestCastStoreErrors(t *testing.T) {
	boom := errors.New("ProvisionedThroughputExceededException")

	tests := []struct {
		name  string
		setup func(*fakeStore)
		req   Request
	}{
		{
			name:  "query fails",
			setup: func(s *fakeStore) { s.queryErr = boom },
			req:   params("movieId", "1"),
		},
		{
			name:  "enrichment fails",
			setup: func(s *fakeStore) { s.getErr = boom },
			req:   params("movieId", "1", "movie", "true"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeStore()
			tt.setup(s)
			h := &Cast{Store: s}
			log, hook := newTestLog()

			resp := h.Handle(context.Background(), log, tt.req)
			require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

			body := decode(t, resp)
			assert.NotContains(t, body, "cast")
			detail := body["error"].(map[string]any)
			assert.Equal(t, internalErrorCode, detail["code"])
			assert.Equal(t, detail["reference"], hook.LastEntry().Data["reference"])
		})
	}
}
