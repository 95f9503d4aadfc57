package config

import (
	"fmt"
	"os"
	"strings"
)

const defaultAddr = ":8080"

// Environment variables read by Load.
const (
	MoviesTableEnv    = "MOVIES_TABLE_NAME"
	CastTableEnv      = "CAST_TABLE_NAME"
	RegionEnv         = "REGION"
	DynamoEndpointEnv = "DYNAMODB_ENDPOINT"
	TracingEnv        = "TRACING"
	LogLevelEnv       = "LOG_LEVEL"
	AddrEnv           = "ADDR"
)

// Tracing selects how requests and AWS calls are traced.
type Tracing string

const (
	TracingNone Tracing = ""
	TracingOTel Tracing = "otel"
	TracingXRay Tracing = "xray"
)

type Config struct {
	MoviesTable    string
	CastTable      string
	Region         string
	DynamoEndpoint string
	Tracing        Tracing
	LogLevel       string
	Addr           string
}

// Load reads the configuration from the environment. Every variable named in
// required must resolve to a non-empty value.
func Load(required ...string) (Config, error) {
	c := Config{
		MoviesTable:    lookup(MoviesTableEnv, "TABLE_NAME"),
		CastTable:      lookup(CastTableEnv),
		Region:         lookup(RegionEnv, "AWS_REGION"),
		DynamoEndpoint: lookup(DynamoEndpointEnv),
		Tracing:        Tracing(strings.ToLower(lookup(TracingEnv))),
		LogLevel:       lookup(LogLevelEnv),
		Addr:           lookup(AddrEnv),
	}
	if c.Addr == "" {
		c.Addr = defaultAddr
	}

	switch c.Tracing {
	case TracingNone, TracingOTel, TracingXRay:
	default:
		return Config{}, fmt.Errorf("%s: unknown tracing mode %q", TracingEnv, c.Tracing)
	}

	resolved := map[string]string{
		MoviesTableEnv:    c.MoviesTable,
		CastTableEnv:      c.CastTable,
		RegionEnv:         c.Region,
		DynamoEndpointEnv: c.DynamoEndpoint,
	}

	var missing []string
	for _, key := range required {
		val, ok := resolved[key]
		if !ok {
			val = os.Getenv(key)
		}
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%s is not set", strings.Join(missing, ", "))
	}

	return c, nil
}

// lookup returns the first non-empty value among keys.
func lookup(keys ...string) string {
	for _, key := range keys {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
	}
	return ""
}
