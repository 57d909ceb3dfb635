package container

import (
	"context"
	"fmt"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/auth"
	"library-catalog/internal/config"
	"library-catalog/internal/domains/author"
	authorRepo "library-catalog/internal/domains/author/repository"
	authorService "library-catalog/internal/domains/author/service"
	"library-catalog/internal/domains/book"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
	"library-catalog/internal/domains/user"
	userRepo "library-catalog/internal/domains/user/repository"
	userService "library-catalog/internal/domains/user/service"
	"library-catalog/internal/graphql"
	infraCache "library-catalog/internal/infrastructure/cache"
	infraDB "library-catalog/internal/infrastructure/database"
	"library-catalog/internal/shared/metrics"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/database"
	"library-catalog/pkg/jwt"
)

// Store is the lifecycle of whichever backend STORE_DRIVER selected
type Store interface {
	Ping(ctx context.Context) error
	Close() error
}

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	Store      Store
	Redis      *infraCache.RedisClient // nil when redis is disabled or unreachable
	Cache      cache.Cache
	Metrics    *metrics.Metrics
	JWTManager *jwt.Manager
	Transactor database.Transactor

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthorRepo author.Repository
	BookRepo   book.Repository
	UserRepo   user.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService author.Service
	BookService   book.Service
	UserService   user.Service
	AuthService   *auth.Service

	// ========================================
	// GRAPHQL LAYER
	// ========================================
	Schema         *graphqlgo.Schema
	GraphQLHandler *graphql.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer connects the store before anything is served.
// Order: store, cache, repositories, services, schema.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("store", cfg.Store.Driver).Msg("Initializing DI Container...")

	c := &Container{
		Config:     cfg,
		Metrics:    metrics.New(),
		JWTManager: jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenTTL),
	}

	// ========================================
	// STEP 1: ENTITY STORE
	// ========================================
	if err := c.initStore(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.initCache(ctx)

	// ========================================
	// STEP 3: REPOSITORIES
	// ========================================
	c.UserRepo = userRepo.NewCachedRepository(c.UserRepo, c.Cache, cfg.Redis.UserCacheTTL)

	// ========================================
	// STEP 4: SERVICES
	// ========================================
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorService, c.Transactor)
	c.UserService = userService.NewUserService(c.UserRepo, cfg.Auth.BcryptCost)
	c.AuthService = auth.NewService(c.UserService, c.JWTManager, c.Cache, c.Metrics, auth.Options{
		LegacyPassword:    cfg.Auth.LegacyPassword,
		MaxFailedLogins:   cfg.Auth.MaxFailedLogins,
		FailedLoginWindow: cfg.Auth.FailedLoginWindow,
	})

	// ========================================
	// STEP 5: SCHEMA + HANDLER
	// ========================================
	schema, err := graphql.NewSchema(
		graphql.NewResolver(c.AuthorService, c.BookService, c.UserService, c.AuthService),
		graphql.Options{
			MaxDepth:       cfg.GraphQL.MaxDepth,
			MaxParallelism: cfg.GraphQL.MaxParallelism,
		},
	)
	if err != nil {
		c.Cleanup()
		return nil, err
	}
	c.Schema = schema
	c.GraphQLHandler = graphql.NewHandler(schema, c.Metrics)

	log.Info().Msg("DI Container initialized")
	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	switch c.Config.Store.Driver {
	case config.StorePostgres:
		db := infraDB.NewPostgresDB(c.Config.Database)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect postgres: %w", err)
		}
		c.Store = db
		c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool)
		c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)
		c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
		c.Transactor = database.NewPgxTransactor(db.Pool)

	case config.StoreMongo:
		db := infraDB.NewMongoDB(c.Config.Mongo)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect mongo: %w", err)
		}
		c.Store = db
		c.AuthorRepo = authorRepo.NewMongoRepository(db.Database)
		c.BookRepo = bookRepo.NewMongoRepository(db.Database)
		c.UserRepo = userRepo.NewMongoRepository(db.Database)
		c.Transactor = database.NewMongoTransactor(db.Client, c.Config.Mongo.Transactions)
		if !c.Config.Mongo.Transactions {
			log.Warn().Msg("mongo transactions disabled; unique indexes are the only guard for addBook")
		}

	case config.StoreSQLite:
		db := infraDB.NewSQLiteDB(c.Config.SQLite.Path)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to open sqlite: %w", err)
		}
		c.Store = db
		c.AuthorRepo = authorRepo.NewSQLiteRepository(db.DB)
		c.BookRepo = bookRepo.NewSQLiteRepository(db.DB)
		c.UserRepo = userRepo.NewSQLiteRepository(db.DB)
		c.Transactor = database.NewGormTransactor(db.DB)

	default:
		return fmt.Errorf("unknown store driver %q", c.Config.Store.Driver)
	}
	return nil
}

// initCache falls back to a no-op cache; redis is an optimisation, not a dependency
func (c *Container) initCache(ctx context.Context) {
	c.Cache = cache.NewNoop()
	if !c.Config.Redis.Enabled {
		return
	}

	rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
		_ = rc.Close()
		return
	}
	c.Redis = rc
	c.Cache = rc
}

// ========================================
// CLEANUP
// ========================================

// Cleanup closes the store and the cache. Safe on a partially built container.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close store")
		} else {
			log.Info().Msg("Store connections closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		} else {
			log.Info().Msg("Redis connections closed")
		}
	}
}
