package graphql

import (
	"context"
	_ "embed"
	"fmt"
	"runtime/debug"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/middleware"
)

//go:embed schema.graphql
var schemaSDL string

// Options bound query cost
type Options struct {
	MaxDepth       int
	MaxParallelism int
}

// NewSchema parses the SDL against r. Parsing fails if a resolver method is missing.
func NewSchema(r *Resolver, opts Options) (*graphqlgo.Schema, error) {
	schemaOpts := []graphqlgo.SchemaOpt{
		graphqlgo.Logger(panicLogger{}),
	}
	if opts.MaxDepth > 0 {
		schemaOpts = append(schemaOpts, graphqlgo.MaxDepth(opts.MaxDepth))
	}
	if opts.MaxParallelism > 0 {
		schemaOpts = append(schemaOpts, graphqlgo.MaxParallelism(opts.MaxParallelism))
	}

	schema, err := graphqlgo.ParseSchema(schemaSDL, r, schemaOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graphql schema: %w", err)
	}
	return schema, nil
}

// panicLogger reports recovered resolver panics through zerolog
type panicLogger struct{}

func (panicLogger) LogPanic(ctx context.Context, value interface{}) {
	log.Error().
		Str("request_id", middleware.RequestIDFromContext(ctx)).
		Interface("panic", value).
		Bytes("stack", debug.Stack()).
		Msg("graphql resolver panic")
}
