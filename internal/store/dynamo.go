package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dannyrandall/moviecast/internal/config"
	"github.com/dannyrandall/moviecast/internal/movies"
)

// RoleIndex is the cast table index keyed by (movieId, roleName).
const RoleIndex = "roleIx"

// ErrNotFound is returned by point lookups that match no item.
var ErrNotFound = errors.New("item not found")

// DynamoAPI is the subset of the DynamoDB client used by Dynamo.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Dynamo reads movies and cast members from their DynamoDB tables.
type Dynamo struct {
	Client      DynamoAPI
	MoviesTable string
	CastTable   string
}

// NewClient creates a DynamoDB client, pointed at c.DynamoEndpoint when set.
func NewClient(cfg aws.Config, c config.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if c.DynamoEndpoint != "" {
			o.EndpointResolver = dynamodb.EndpointResolverFromURL(c.DynamoEndpoint)
		}
	})
}

func NewDynamo(client DynamoAPI, c config.Config) *Dynamo {
	return &Dynamo{
		Client:      client,
		MoviesTable: c.MoviesTable,
		CastTable:   c.CastTable,
	}
}

// GetMovie fetches a movie by id with all of its stored attributes. It
// returns ErrNotFound if there is none.
func (d *Dynamo) GetMovie(ctx context.Context, id int) (movies.Record, error) {
	result, err := d.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.MoviesTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.Itoa(id)},
		},
	})
	switch {
	case err != nil:
		return nil, fmt.Errorf("get item: %w", err)
	case result.Item == nil:
		return nil, ErrNotFound
	}

	var movie map[string]any
	if err := attributevalue.UnmarshalMap(result.Item, &movie); err != nil {
		return nil, fmt.Errorf("unmarshal movie: %w", err)
	}

	return movies.Record(movie), nil
}

// QueryCast returns the stored cast items of a movie that match filter. Only
// the first page of results is returned.
func (d *Dynamo) QueryCast(ctx context.Context, movieID int, filter movies.CastFilter) ([]movies.Record, error) {
	input := &dynamodb.QueryInput{
		TableName: aws.String(d.CastTable),
	}

	keyCond := expression.Key("movieId").Equal(expression.Value(movieID))
	switch filter.Kind {
	case movies.ByRole:
		input.IndexName = aws.String(RoleIndex)
		keyCond = keyCond.And(expression.KeyBeginsWith(expression.Key("roleName"), filter.Prefix))
	case movies.ByActor:
		keyCond = keyCond.And(expression.KeyBeginsWith(expression.Key("actorName"), filter.Prefix))
	}

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build key condition: %w", err)
	}
	input.KeyConditionExpression = expr.KeyCondition()
	input.ExpressionAttributeNames = expr.Names()
	input.ExpressionAttributeValues = expr.Values()

	result, err := d.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	var items []map[string]any
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cast: %w", err)
	}

	cast := make([]movies.Record, 0, len(items))
	for _, item := range items {
		cast = append(cast, movies.Record(item))
	}
	return cast, nil
}
