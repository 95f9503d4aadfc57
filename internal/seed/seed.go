// Package seed loads the movie and cast tables from seed files at deploy time.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dannyrandall/moviecast/internal/movies"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// batchSize is the BatchWriteItem request limit.
	batchSize = 25

	defaultMaxRounds = 5
)

// ErrUnprocessed is returned when DynamoDB keeps rejecting items after every
// resubmission round.
var ErrUnprocessed = errors.New("items left unprocessed")

type BatchWriteAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// ReadMovies decodes a YAML or JSON list of movies.
func ReadMovies(r io.Reader) ([]movies.Movie, error) {
	var ms []movies.Movie
	if err := yaml.NewDecoder(r).Decode(&ms); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	return ms, nil
}

// ReadCast decodes a YAML or JSON list of cast members.
func ReadCast(r io.Reader) ([]movies.CastMember, error) {
	var cs []movies.CastMember
	if err := yaml.NewDecoder(r).Decode(&cs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode cast: %w", err)
	}
	return cs, nil
}

func ReadMoviesFile(path string) ([]movies.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMovies(f)
}

func ReadCastFile(path string) ([]movies.CastMember, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCast(f)
}

// Validate checks every record's fields, that movie ids are unique and that
// every cast member belongs to one of ms.
func Validate(ms []movies.Movie, cs []movies.CastMember) error {
	validate := validator.New()

	ids := make(map[int]bool, len(ms))
	for i, m := range ms {
		if err := validate.Struct(m); err != nil {
			return fmt.Errorf("movie %d: %w", i, err)
		}
		if ids[m.ID] {
			return fmt.Errorf("movie %d: duplicate id %d", i, m.ID)
		}
		ids[m.ID] = true
	}

	type castKey struct {
		movieID int
		actor   string
	}
	seen := make(map[castKey]bool, len(cs))
	for i, c := range cs {
		if err := validate.Struct(c); err != nil {
			return fmt.Errorf("cast member %d: %w", i, err)
		}
		if !ids[c.MovieID] {
			return fmt.Errorf("cast member %d: unknown movie id %d", i, c.MovieID)
		}
		key := castKey{c.MovieID, c.ActorName}
		if seen[key] {
			return fmt.Errorf("cast member %d: duplicate actor %q in movie %d", i, c.ActorName, c.MovieID)
		}
		seen[key] = true
	}

	return nil
}

// Loader writes seed records with BatchWriteItem.
type Loader struct {
	Client      BatchWriteAPI
	MoviesTable string
	CastTable   string
	Log         *logrus.Entry

	// MaxRounds bounds how often unprocessed items of one batch are
	// resubmitted. Zero means 5.
	MaxRounds int
}

// Load validates and writes ms and cs. Movies are written first.
func (l *Loader) Load(ctx context.Context, ms []movies.Movie, cs []movies.CastMember) error {
	if err := Validate(ms, cs); err != nil {
		return fmt.Errorf("validate seed data: %w", err)
	}

	movieItems, err := marshalAll(ms)
	if err != nil {
		return fmt.Errorf("marshal movies: %w", err)
	}
	if err := l.write(ctx, l.MoviesTable, movieItems); err != nil {
		return fmt.Errorf("write movies: %w", err)
	}

	castItems, err := marshalAll(cs)
	if err != nil {
		return fmt.Errorf("marshal cast: %w", err)
	}
	if err := l.write(ctx, l.CastTable, castItems); err != nil {
		return fmt.Errorf("write cast: %w", err)
	}

	return nil
}

func marshalAll[T any](records []T) ([]map[string]types.AttributeValue, error) {
	items := make([]map[string]types.AttributeValue, 0, len(records))
	for i, r := range records {
		item, err := attributevalue.MarshalMap(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (l *Loader) write(ctx context.Context, table string, items []map[string]types.AttributeValue) error {
	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}

		reqs := make([]types.WriteRequest, 0, end-start)
		for _, item := range items[start:end] {
			reqs = append(reqs, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
		}

		if err := l.writeBatch(ctx, table, reqs); err != nil {
			return err
		}
	}

	l.log().WithField("table", table).Infof("Wrote %d items", len(items))
	return nil
}

// writeBatch submits one batch and resubmits whatever DynamoDB reports as
// unprocessed.
func (l *Loader) writeBatch(ctx context.Context, table string, reqs []types.WriteRequest) error {
	maxRounds := l.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}

	pending := map[string][]types.WriteRequest{table: reqs}
	for round := 0; round < maxRounds; round++ {
		out, err := l.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return fmt.Errorf("batch write item: %w", err)
		}
		if len(out.UnprocessedItems[table]) == 0 {
			return nil
		}

		pending = out.UnprocessedItems
		l.log().WithField("table", table).Debugf("Resubmitting %d unprocessed items", len(pending[table]))
	}

	return fmt.Errorf("%s: %d %w", table, len(pending[table]), ErrUnprocessed)
}

func (l *Loader) log() *logrus.Entry {
	if l.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return l.Log
}
