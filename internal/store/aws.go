package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/dannyrandall/moviecast/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
)

// LoadAWSConfig loads the default AWS config for c.Region and instruments it
// for the configured tracing mode.
func LoadAWSConfig(ctx context.Context, c config.Config) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, awsconfig.WithRegion(c.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}

	switch c.Tracing {
	case config.TracingOTel:
		otelaws.AppendMiddlewares(&cfg.APIOptions)
	case config.TracingXRay:
		awsv2.AWSV2Instrumentor(&cfg.APIOptions)
	}

	return cfg, nil
}
